package ingestion

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atarsearch/atarsearch/storage/badger"
)

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	courseRepo, subjectRepo, studentRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		studentRepo.Close()
		subjectRepo.Close()
		courseRepo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(courseRepo, subjectRepo, studentRepo, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline
}

func TestNewPipeline_NilRepositories(t *testing.T) {
	courseRepo, subjectRepo, studentRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		studentRepo.Close()
		subjectRepo.Close()
		courseRepo.Close()
		backend.Close()
	}()

	t.Run("nil course repository", func(t *testing.T) {
		_, err := NewPipeline(nil, subjectRepo, studentRepo)
		assert.Equal(t, ErrCourseRepositoryRequired, err)
	})

	t.Run("nil subject repository", func(t *testing.T) {
		_, err := NewPipeline(courseRepo, nil, studentRepo)
		assert.Equal(t, ErrSubjectRepositoryRequired, err)
	})

	t.Run("nil student repository", func(t *testing.T) {
		_, err := NewPipeline(courseRepo, subjectRepo, nil)
		assert.Equal(t, ErrStudentRepositoryRequired, err)
	})
}

func TestLoadCourses(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx := context.Background()

	input := `[
		{"code": "M3001", "name": "Bachelor of Science", "rank": "85.10", "institution": "Monash University"},
		{"code": "M6011", "name": "Doctor of Medicine", "rank": 99.85, "institution": "Monash University"}
	]`

	n, err := pipeline.LoadCourses(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := pipeline.courseRepo.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoadCourses_SkipsInvalidRows(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx := context.Background()

	// The middle row has no institution; it is logged and skipped, the
	// rest of the file still loads.
	input := `[
		{"code": "M3001", "name": "Bachelor of Science", "rank": "85.10", "institution": "Monash University"},
		{"code": "X0000", "name": "Orphan Course", "rank": "70.00", "institution": ""},
		{"code": "D3002", "name": "Bachelor of Engineering", "rank": "80.00", "institution": "Deakin University"}
	]`

	n, err := pipeline.LoadCourses(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadSubjects(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx := context.Background()

	input := `[
		{"code": "MM34", "name": "Mathematical Methods", "mean": 34.2},
		{"code": "CH34", "name": "Chemistry", "mean": 31.8},
		{"code": "", "name": "No Code"}
	]`

	n, err := pipeline.LoadSubjects(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	subject, err := pipeline.subjectRepo.GetSubjectByCode(ctx, "MM34")
	require.NoError(t, err)
	assert.Equal(t, "Mathematical Methods", subject.Name)
}

func TestLoadStudents(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx := context.Background()

	input := `[
		{"name": "John Smith", "school": "Melbourne High School", "year": 2024,
			"subjects": [{"subject": "Chemistry", "score": 38}]},
		{"name": "Out of Range", "year": 2024, "subjects": [{"subject": "Chemistry", "score": 99}]},
		{"name": "Jane Doe", "school": "Geelong Grammar", "year": 2023}
	]`

	n, err := pipeline.LoadStudents(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	students, err := pipeline.studentRepo.ListStudentsByYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "John Smith", students[0].Name)
}

func TestLoad_MalformedInput(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.LoadCourses(ctx, strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestLoadCourses_ManyBatches(t *testing.T) {
	pipeline := newTestPipeline(t, WithBatchSize(3), WithPoolSize(2))
	ctx := context.Background()

	rows := make([]string, 25)
	for i := range rows {
		rows[i] = fmt.Sprintf(
			`{"code": "C%02d", "name": "Course %02d", "rank": "80.00", "institution": "Institution %d"}`,
			i, i, i%4)
	}
	input := "[" + strings.Join(rows, ",") + "]"

	n, err := pipeline.LoadCourses(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	count, err := pipeline.courseRepo.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}
