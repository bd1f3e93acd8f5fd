package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		name    string
		course  *Course
		wantErr error
	}{
		{
			name: "valid course",
			course: &Course{
				Code:        "M3001",
				Name:        "Bachelor of Science",
				Rank:        "85.10",
				Institution: "Monash University",
			},
			wantErr: nil,
		},
		{
			name: "valid course with sentinel rank",
			course: &Course{
				Code:        "M6011",
				Name:        "Bachelor of Medical Science and Doctor of Medicine",
				Rank:        "N/P",
				Institution: "Monash University",
			},
			wantErr: nil,
		},
		{
			name: "valid course with empty rank",
			course: &Course{
				Code:        "M3001",
				Name:        "Bachelor of Science",
				Institution: "Monash University",
			},
			wantErr: nil,
		},
		{
			name:    "nil course",
			course:  nil,
			wantErr: ErrInvalidCourse,
		},
		{
			name: "empty code",
			course: &Course{
				Name:        "Bachelor of Science",
				Institution: "Monash University",
			},
			wantErr: ErrEmptyCode,
		},
		{
			name: "empty name",
			course: &Course{
				Code:        "M3001",
				Institution: "Monash University",
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "empty institution",
			course: &Course{
				Code: "M3001",
				Name: "Bachelor of Science",
			},
			wantErr: ErrEmptyInstitution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCourse(tt.course)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject *Subject
		wantErr error
	}{
		{
			name: "valid subject",
			subject: &Subject{
				Code: "MM34",
				Name: "Mathematical Methods",
				Mean: 32.1,
			},
			wantErr: nil,
		},
		{
			name: "valid subject without statistics",
			subject: &Subject{
				Code: "GM34",
				Name: "General Mathematics",
			},
			wantErr: nil,
		},
		{
			name:    "nil subject",
			subject: nil,
			wantErr: ErrInvalidSubject,
		},
		{
			name:    "empty code",
			subject: &Subject{Name: "Mathematical Methods"},
			wantErr: ErrEmptyCode,
		},
		{
			name:    "empty name",
			subject: &Subject{Code: "MM34"},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubject(tt.subject)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateStudent(t *testing.T) {
	tests := []struct {
		name    string
		student *Student
		wantErr error
	}{
		{
			name: "valid student",
			student: &Student{
				Name:   "John Smith",
				School: "Melbourne High School",
				Year:   2024,
				Subjects: []SubjectScore{
					{Subject: "Mathematical Methods", Score: 42},
					{Subject: "Chemistry", Score: 38},
				},
			},
			wantErr: nil,
		},
		{
			name:    "valid student without year or school",
			student: &Student{Name: "Jane Doe"},
			wantErr: nil,
		},
		{
			name: "valid student with perfect score",
			student: &Student{
				Name:     "Jane Doe",
				Subjects: []SubjectScore{{Subject: "Literature", Score: 50}},
			},
			wantErr: nil,
		},
		{
			name:    "nil student",
			student: nil,
			wantErr: ErrInvalidStudent,
		},
		{
			name:    "empty name",
			student: &Student{School: "Melbourne High School"},
			wantErr: ErrEmptyName,
		},
		{
			name: "score above range",
			student: &Student{
				Name:     "John Smith",
				Subjects: []SubjectScore{{Subject: "Chemistry", Score: 51}},
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "negative score",
			student: &Student{
				Name:     "John Smith",
				Subjects: []SubjectScore{{Subject: "Chemistry", Score: -1}},
			},
			wantErr: ErrScoreOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStudent(tt.student)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{"empty query", "", nil},
		{"plain query", "monash science", nil},
		{"query with tab", "monash\tscience", nil},
		{"query at the length cap", strings.Repeat("a", MaxQueryLength), nil},
		{"query over the length cap", strings.Repeat("a", MaxQueryLength+1), ErrQueryTooLong},
		{"query with newline", "monash\nscience", ErrQueryControlChars},
		{"query with NUL", "monash\x00", ErrQueryControlChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("Expected error to wrap ErrInvalidQuery, got %v", err)
			}
		})
	}
}
