package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atarsearch/atarsearch/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.CourseID("Monash University", "M3001")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCourse(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		course *core.Course
	}{
		{
			name: "full course",
			course: &core.Course{
				Id:          core.CourseID("Monash University", "M3001"),
				Code:        "M3001",
				Name:        "Bachelor of Science",
				Rank:        "85.10",
				Institution: "Monash University",
				Campus:      "Clayton",
				Metadata:    map[string]string{"mode": "on-campus", "duration": "3 years"},
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
		{
			name: "sentinel rank, no metadata",
			course: &core.Course{
				Id:          core.CourseID("University of Melbourne", "UM-BDES"),
				Code:        "UM-BDES",
				Name:        "Bachelor of Design",
				Rank:        "N/P",
				Institution: "University of Melbourne",
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCourse(tt.course)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCourse(data)
			require.NoError(t, err)
			assert.Equal(t, tt.course.Id, decoded.Id)
			assert.Equal(t, tt.course.Code, decoded.Code)
			assert.Equal(t, tt.course.Name, decoded.Name)
			assert.Equal(t, tt.course.Rank, decoded.Rank)
			assert.Equal(t, tt.course.Institution, decoded.Institution)
			assert.Equal(t, tt.course.Campus, decoded.Campus)
			assert.Equal(t, tt.course.Metadata, decoded.Metadata)
			assert.True(t, tt.course.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.course.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestMarshalUnmarshalSubject(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	subject := &core.Subject{
		Id:         core.SubjectID("MM34"),
		Code:       "MM34",
		Name:       "Mathematical Methods",
		Mean:       34.2,
		Stdev:      7.1,
		Scaling:    map[string]float64{"30": 32.5, "40": 43.1, "50": 52.0},
		InsertedAt: now,
		UpdatedAt:  now,
	}

	data := MarshalSubject(subject)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalSubject(data)
	require.NoError(t, err)
	assert.Equal(t, subject.Id, decoded.Id)
	assert.Equal(t, subject.Code, decoded.Code)
	assert.Equal(t, subject.Name, decoded.Name)
	assert.Equal(t, subject.Mean, decoded.Mean)
	assert.Equal(t, subject.Stdev, decoded.Stdev)
	assert.Equal(t, subject.Scaling, decoded.Scaling)
	assert.True(t, subject.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalStudent(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	student := &core.Student{
		Id:     core.ID(7),
		Name:   "John Smith",
		School: "Melbourne High School",
		Year:   2024,
		Subjects: []core.SubjectScore{
			{Subject: "Mathematical Methods", Score: 42},
			{Subject: "Chemistry", Score: 38},
			{Subject: "Literature", Score: 50},
		},
		InsertedAt: now,
		UpdatedAt:  now,
	}

	data := MarshalStudent(student)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalStudent(data)
	require.NoError(t, err)
	assert.Equal(t, student.Id, decoded.Id)
	assert.Equal(t, student.Name, decoded.Name)
	assert.Equal(t, student.School, decoded.School)
	assert.Equal(t, student.Year, decoded.Year)
	assert.Equal(t, student.Subjects, decoded.Subjects)
	assert.True(t, student.InsertedAt.Equal(decoded.InsertedAt))
}

func TestUnmarshalCourse_Truncated(t *testing.T) {
	course := &core.Course{
		Id:          core.CourseID("Monash University", "M3001"),
		Code:        "M3001",
		Name:        "Bachelor of Science",
		Institution: "Monash University",
	}
	data := MarshalCourse(course)

	_, err := UnmarshalCourse(data[:len(data)/2])
	assert.Error(t, err)
}
