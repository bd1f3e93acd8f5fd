package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category classifies a course against a student's ATAR.
type Category string

const (
	// CategorySafe marks courses whose historical rank sits comfortably below the ATAR.
	CategorySafe Category = "safe"
	// CategoryTarget marks courses within five points of the ATAR in either direction.
	CategoryTarget Category = "target"
	// CategoryReach marks courses whose historical rank exceeds the ATAR by more than five points.
	CategoryReach Category = "reach"
	// CategoryUnknown marks courses with an unpublished or unparsable rank.
	CategoryUnknown Category = "unknown"
	// CategoryAll is the filter value that keeps every category.
	CategoryAll Category = "all"
)

// UnpublishedRanks are the sentinel codes published instead of a numeric
// minimum ATAR. "N/P" = not published, "L/N" = low/no offers, "RC" = range
// concealed.
var UnpublishedRanks = map[string]bool{
	"N/P": true,
	"L/N": true,
	"RC":  true,
}

// Course is a tertiary course record as loaded from the admissions dataset.
// Rank stays a string because the source data mixes numeric cutoffs with
// sentinel codes (see UnpublishedRanks).
type Course struct {
	Id          ID
	Code        string
	Name        string
	Rank        string
	Institution string
	Campus      string
	Metadata    map[string]string // Optional extended metadata (study mode, duration, ...)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// ContentKey returns the string hashed into the course's content-based ID.
func (c *Course) ContentKey() string {
	return "(" + c.Institution + "," + c.Code + ")"
}

// CourseID returns the content-based ID for an (institution, code) pair.
func CourseID(institution, code string) ID {
	return IDFromContent("(" + institution + "," + code + ")")
}

// SubjectID returns the content-based ID for a subject code.
func SubjectID(code string) ID {
	return IDFromContent(code)
}

// EnrichedCourse is a Course plus per-search derived fields. Enriched values
// are recomputed on every search call and never persisted.
type EnrichedCourse struct {
	Course
	Category   Category
	RankNum    float64
	SearchText string
}

// Subject is a scored subject record. Mean and Stdev are zero when the
// statistics were not published for the year. Scaling maps an aggregate
// band to the scaled study score used for course aggregates.
type Subject struct {
	Id         ID
	Code       string
	Name       string
	Mean       float64
	Stdev      float64
	Scaling    map[string]float64
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SubjectScore is a single subject result attached to a student record.
type SubjectScore struct {
	Subject string
	Score   int
}

// MaxSubjectScore is the top of the study score range.
const MaxSubjectScore = 50

// Perfect reports whether the score is a perfect study score.
func (s SubjectScore) Perfect() bool {
	return s.Score == MaxSubjectScore
}

// Student is a student score record. Year 0 means the graduating year was
// not recorded.
type Student struct {
	Id         ID
	Name       string
	School     string
	Year       int
	Subjects   []SubjectScore
	InsertedAt time.Time
	UpdatedAt  time.Time
}

func (s *Student) String() string {
	return fmt.Sprintf("%s (%s, %d)", s.Name, s.School, s.Year)
}

// DefaultSubjectAliases maps common spoken shorthand to canonical subject
// names. A query equal to an alias key, or starting with the key plus a
// space, resolves to the listed subjects ahead of fuzzy matching.
var DefaultSubjectAliases = map[string][]string{
	"methods":    {"Mathematical Methods"},
	"spesh":      {"Specialist Mathematics"},
	"specialist": {"Specialist Mathematics"},
	"further":    {"Further Mathematics", "General Mathematics"},
	"general":    {"General Mathematics"},
	"bio":        {"Biology"},
	"chem":       {"Chemistry"},
	"psych":      {"Psychology"},
	"lit":        {"Literature"},
	"legal":      {"Legal Studies"},
	"business":   {"Business Management"},
	"pe":         {"Physical Education"},
	"hhd":        {"Health and Human Development"},
	"accounting": {"Accounting"},
	"global":     {"Global Politics"},
}
