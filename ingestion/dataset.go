package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/atarsearch/atarsearch/core"
)

// rankValue accepts both string and numeric rank encodings in the source
// data and normalizes to a string at the boundary. Sentinel codes ("N/P",
// "L/N", "RC") stay as-is; numbers are formatted without trailing zeros.
type rankValue string

func (r *rankValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rankValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rank must be a string or number: %w", err)
	}
	*r = rankValue(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type courseRecord struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Rank        rankValue         `json:"rank"`
	Institution string            `json:"institution"`
	Campus      string            `json:"campus"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type subjectRecord struct {
	Code    string             `json:"code"`
	Name    string             `json:"name"`
	Mean    float64            `json:"mean,omitempty"`
	Stdev   float64            `json:"stdev,omitempty"`
	Scaling map[string]float64 `json:"scaling,omitempty"`
}

type subjectScoreRecord struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

type studentRecord struct {
	Name     string               `json:"name"`
	School   string               `json:"school"`
	Year     int                  `json:"year,omitempty"`
	Subjects []subjectScoreRecord `json:"subjects"`
}

// DecodeCourses decodes a JSON array of course rows into domain records.
func DecodeCourses(r io.Reader) ([]*core.Course, error) {
	var rows []courseRecord
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding courses: %w", err)
	}

	courses := make([]*core.Course, len(rows))
	for i, row := range rows {
		courses[i] = &core.Course{
			Code:        row.Code,
			Name:        row.Name,
			Rank:        string(row.Rank),
			Institution: row.Institution,
			Campus:      row.Campus,
			Metadata:    row.Metadata,
		}
	}
	return courses, nil
}

// DecodeSubjects decodes a JSON array of subject rows into domain records.
func DecodeSubjects(r io.Reader) ([]*core.Subject, error) {
	var rows []subjectRecord
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding subjects: %w", err)
	}

	subjects := make([]*core.Subject, len(rows))
	for i, row := range rows {
		subjects[i] = &core.Subject{
			Code:    row.Code,
			Name:    row.Name,
			Mean:    row.Mean,
			Stdev:   row.Stdev,
			Scaling: row.Scaling,
		}
	}
	return subjects, nil
}

// DecodeStudents decodes a JSON array of student rows into domain records.
func DecodeStudents(r io.Reader) ([]*core.Student, error) {
	var rows []studentRecord
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding students: %w", err)
	}

	students := make([]*core.Student, len(rows))
	for i, row := range rows {
		scores := make([]core.SubjectScore, len(row.Subjects))
		for j, score := range row.Subjects {
			scores[j] = core.SubjectScore{Subject: score.Subject, Score: score.Score}
		}
		students[i] = &core.Student{
			Name:     row.Name,
			School:   row.School,
			Year:     row.Year,
			Subjects: scores,
		}
	}
	return students, nil
}
