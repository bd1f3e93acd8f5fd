package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/atarsearch/atarsearch/core"
)

// Key prefixes for different data types. Record and index prefixes must not
// share a common prefix so record scans never walk index entries.
const (
	courseRecordPrefix      = "courec"
	courseInstitutionPrefix = "couinst"
	subjectRecordPrefix     = "subrec"
	subjectCodePrefix       = "subcode"
	studentRecordPrefix     = "sturec"
	studentYearPrefix       = "stuyear"
	studentIDSeq            = "stuseq"
)

// makeCourseKey generates a key for a course record by ID.
func makeCourseKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", courseRecordPrefix, id))
}

// makeCourseInstitutionKey generates a composite key for the institution index.
// Format: prefix:institution:id
func makeCourseInstitutionKey(institution string, id core.ID) []byte {
	prefix := makePartialCourseInstitutionKey(institution)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialCourseInstitutionKey generates a partial key for institution scans.
func makePartialCourseInstitutionKey(institution string) []byte {
	return []byte(courseInstitutionPrefix + ":" + institution + ":")
}

// makeSubjectKey generates a key for a subject record by ID.
func makeSubjectKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", subjectRecordPrefix, id))
}

// makeSubjectCodeKey generates a key for subject lookup by code.
func makeSubjectCodeKey(code string) []byte {
	return []byte(subjectCodePrefix + ":" + code)
}

// makeStudentKey generates a key for a student record by ID.
func makeStudentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", studentRecordPrefix, id))
}

// makeStudentYearKey generates a composite key for the year index.
// Format: prefix:year:id, both BigEndian so lexicographic sort works.
func makeStudentYearKey(year int, id core.ID) []byte {
	prefix := makePartialStudentYearKey(year)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialStudentYearKey generates a partial key for year scans.
func makePartialStudentYearKey(year int) []byte {
	prefix := []byte(studentYearPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(year))
	return buf
}
