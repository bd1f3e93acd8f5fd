package core

import (
	"sort"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types. The domain structs are flat enough
// that the serializers are written by hand instead of generated; field order
// here is the wire format and must not be reordered.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, buf []byte) int {
	return varint.Uint64.Marshal(uint64(v), buf)
}

func (s idMUS) Unmarshal(buf []byte) (ID, int, error) {
	raw, n, err := varint.Uint64.Unmarshal(buf)
	return ID(raw), n, err
}

func (s idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(buf []byte) (int, error) {
	return varint.Uint64.Skip(buf)
}

// timeMUS serializes timestamps as microseconds since the Unix epoch.
type timeMUS struct{}

func (s timeMUS) Marshal(v time.Time, buf []byte) int {
	return varint.Int64.Marshal(v.UnixMicro(), buf)
}

func (s timeMUS) Unmarshal(buf []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(buf)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (s timeMUS) Size(v time.Time) int {
	return varint.Int64.Size(v.UnixMicro())
}

func (s timeMUS) Skip(buf []byte) (int, error) {
	return varint.Int64.Skip(buf)
}

// stringMapMUS serializes string maps with sorted keys so equal maps always
// produce identical bytes.
type stringMapMUS struct{}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s stringMapMUS) Marshal(v map[string]string, buf []byte) (n int) {
	n = varint.Int.Marshal(len(v), buf)
	for _, k := range sortedKeys(v) {
		n += ord.String.Marshal(k, buf[n:])
		n += ord.String.Marshal(v[k], buf[n:])
	}
	return n
}

func (s stringMapMUS) Unmarshal(buf []byte) (map[string]string, int, error) {
	length, n, err := varint.Int.Unmarshal(buf)
	if err != nil || length == 0 {
		return nil, n, err
	}
	v := make(map[string]string, length)
	for i := 0; i < length; i++ {
		var k, val string
		var n1 int
		k, n1, err = ord.String.Unmarshal(buf[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		val, n1, err = ord.String.Unmarshal(buf[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[k] = val
	}
	return v, n, nil
}

func (s stringMapMUS) Size(v map[string]string) (size int) {
	size = varint.Int.Size(len(v))
	for k, val := range v {
		size += ord.String.Size(k) + ord.String.Size(val)
	}
	return size
}

// floatMapMUS serializes string-to-float maps with sorted keys.
type floatMapMUS struct{}

func (s floatMapMUS) Marshal(v map[string]float64, buf []byte) (n int) {
	n = varint.Int.Marshal(len(v), buf)
	for _, k := range sortedKeys(v) {
		n += ord.String.Marshal(k, buf[n:])
		n += varint.Float64.Marshal(v[k], buf[n:])
	}
	return n
}

func (s floatMapMUS) Unmarshal(buf []byte) (map[string]float64, int, error) {
	length, n, err := varint.Int.Unmarshal(buf)
	if err != nil || length == 0 {
		return nil, n, err
	}
	v := make(map[string]float64, length)
	for i := 0; i < length; i++ {
		var k string
		var val float64
		var n1 int
		k, n1, err = ord.String.Unmarshal(buf[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		val, n1, err = varint.Float64.Unmarshal(buf[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[k] = val
	}
	return v, n, nil
}

func (s floatMapMUS) Size(v map[string]float64) (size int) {
	size = varint.Int.Size(len(v))
	for k, val := range v {
		size += ord.String.Size(k) + varint.Float64.Size(val)
	}
	return size
}

// CourseMUS serializes Courses.
var CourseMUS = courseMUS{}

type courseMUS struct{}

func (s courseMUS) Marshal(v Course, buf []byte) (n int) {
	n = IDMUS.Marshal(v.Id, buf)
	n += ord.String.Marshal(v.Code, buf[n:])
	n += ord.String.Marshal(v.Name, buf[n:])
	n += ord.String.Marshal(v.Rank, buf[n:])
	n += ord.String.Marshal(v.Institution, buf[n:])
	n += ord.String.Marshal(v.Campus, buf[n:])
	n += stringMapMUS{}.Marshal(v.Metadata, buf[n:])
	n += timeMUS{}.Marshal(v.InsertedAt, buf[n:])
	n += timeMUS{}.Marshal(v.UpdatedAt, buf[n:])
	return n
}

func (s courseMUS) Unmarshal(buf []byte) (v Course, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(buf); err != nil {
		return
	}
	if v.Code, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Name, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Rank, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Institution, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Campus, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata, n1, err = (stringMapMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s courseMUS) Size(v Course) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Code) +
		ord.String.Size(v.Name) +
		ord.String.Size(v.Rank) +
		ord.String.Size(v.Institution) +
		ord.String.Size(v.Campus) +
		stringMapMUS{}.Size(v.Metadata) +
		timeMUS{}.Size(v.InsertedAt) +
		timeMUS{}.Size(v.UpdatedAt)
}

// SubjectMUS serializes Subjects.
var SubjectMUS = subjectMUS{}

type subjectMUS struct{}

func (s subjectMUS) Marshal(v Subject, buf []byte) (n int) {
	n = IDMUS.Marshal(v.Id, buf)
	n += ord.String.Marshal(v.Code, buf[n:])
	n += ord.String.Marshal(v.Name, buf[n:])
	n += varint.Float64.Marshal(v.Mean, buf[n:])
	n += varint.Float64.Marshal(v.Stdev, buf[n:])
	n += floatMapMUS{}.Marshal(v.Scaling, buf[n:])
	n += timeMUS{}.Marshal(v.InsertedAt, buf[n:])
	n += timeMUS{}.Marshal(v.UpdatedAt, buf[n:])
	return n
}

func (s subjectMUS) Unmarshal(buf []byte) (v Subject, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(buf); err != nil {
		return
	}
	if v.Code, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Name, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Mean, n1, err = varint.Float64.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Stdev, n1, err = varint.Float64.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Scaling, n1, err = (floatMapMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s subjectMUS) Size(v Subject) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Code) +
		ord.String.Size(v.Name) +
		varint.Float64.Size(v.Mean) +
		varint.Float64.Size(v.Stdev) +
		floatMapMUS{}.Size(v.Scaling) +
		timeMUS{}.Size(v.InsertedAt) +
		timeMUS{}.Size(v.UpdatedAt)
}

// SubjectScoreMUS serializes SubjectScores.
var SubjectScoreMUS = subjectScoreMUS{}

type subjectScoreMUS struct{}

func (s subjectScoreMUS) Marshal(v SubjectScore, buf []byte) (n int) {
	n = ord.String.Marshal(v.Subject, buf)
	n += varint.Int.Marshal(v.Score, buf[n:])
	return n
}

func (s subjectScoreMUS) Unmarshal(buf []byte) (v SubjectScore, n int, err error) {
	var n1 int
	if v.Subject, n, err = ord.String.Unmarshal(buf); err != nil {
		return
	}
	if v.Score, n1, err = varint.Int.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s subjectScoreMUS) Size(v SubjectScore) int {
	return ord.String.Size(v.Subject) + varint.Int.Size(v.Score)
}

// StudentMUS serializes Students.
var StudentMUS = studentMUS{}

type studentMUS struct{}

func (s studentMUS) Marshal(v Student, buf []byte) (n int) {
	n = IDMUS.Marshal(v.Id, buf)
	n += ord.String.Marshal(v.Name, buf[n:])
	n += ord.String.Marshal(v.School, buf[n:])
	n += varint.Int.Marshal(v.Year, buf[n:])
	n += varint.Int.Marshal(len(v.Subjects), buf[n:])
	for _, score := range v.Subjects {
		n += SubjectScoreMUS.Marshal(score, buf[n:])
	}
	n += timeMUS{}.Marshal(v.InsertedAt, buf[n:])
	n += timeMUS{}.Marshal(v.UpdatedAt, buf[n:])
	return n
}

func (s studentMUS) Unmarshal(buf []byte) (v Student, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(buf); err != nil {
		return
	}
	if v.Name, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.School, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Year, n1, err = varint.Int.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var count int
	if count, n1, err = varint.Int.Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if count > 0 {
		v.Subjects = make([]SubjectScore, count)
		for i := 0; i < count; i++ {
			if v.Subjects[i], n1, err = SubjectScoreMUS.Unmarshal(buf[n:]); err != nil {
				return v, n + n1, err
			}
			n += n1
		}
	}
	if v.InsertedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = (timeMUS{}).Unmarshal(buf[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s studentMUS) Size(v Student) int {
	size := IDMUS.Size(v.Id) +
		ord.String.Size(v.Name) +
		ord.String.Size(v.School) +
		varint.Int.Size(v.Year) +
		varint.Int.Size(len(v.Subjects))
	for _, score := range v.Subjects {
		size += SubjectScoreMUS.Size(score)
	}
	return size +
		timeMUS{}.Size(v.InsertedAt) +
		timeMUS{}.Size(v.UpdatedAt)
}
