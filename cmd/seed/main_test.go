package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/course-planner/internal/domain/shared"
	"github.com/unipath/course-planner/pkg/retry"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prerequisites.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, ""+
		"Course,0,1,2\n"+
		"CS101,,,\n"+
		"CS201,CS101,none,\n"+
		"CS301,CS201,MATH101,n/a\n"+
		",CS101,,\n")

	courses, edges, err := loadCSV(path)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]shared.CourseID{"CS101", "CS201", "CS301", "MATH101"},
		courses)
	assert.Len(t, edges, 3)
}

func TestLoadCSV_PrereqOnlyCodeBecomesCourse(t *testing.T) {
	path := writeCSV(t, "Course,0\nCS201,MATH101\n")

	courses, edges, err := loadCSV(path)
	require.NoError(t, err)

	assert.Contains(t, courses, shared.CourseID("MATH101"))
	require.Len(t, edges, 1)
	assert.Equal(t, shared.CourseID("CS201"), edges[0].Course)
}

func TestLoadCSV_MalformedRowFailsInsteadOfTruncating(t *testing.T) {
	path := writeCSV(t, ""+
		"Course,0\n"+
		"CS101,\n"+
		"CS201,\"unterminated\n"+
		"CS301,\n")

	_, _, err := loadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoadCSV_MissingCourseColumn(t *testing.T) {
	path := writeCSV(t, "Code,0\nCS101,\n")

	_, _, err := loadCSV(path)
	assert.Error(t, err)
}

func TestClassifySeedErr(t *testing.T) {
	assert.NoError(t, classifySeedErr(nil))

	unique := fmt.Errorf("seed catalog batch: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, retry.IsPermanent(classifySeedErr(unique)))

	fk := fmt.Errorf("seed catalog batch: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, retry.IsPermanent(classifySeedErr(fk)))

	transient := errors.New("connection reset")
	assert.True(t, retry.IsRetryable(classifySeedErr(transient)))
}

func TestDemoStudents(t *testing.T) {
	students := demoStudents([]shared.CourseID{"B", "C", "A", "D"})
	require.Len(t, students, 2)

	assert.Equal(t, shared.StudentID("s1"), students[0].ID)
	assert.Equal(t, []shared.CourseID{"A", "B"}, students[0].Completed)
	assert.Equal(t, []shared.CourseID{"A", "B", "C"}, students[1].Completed)
}

func TestDemoStudents_TooFewCourses(t *testing.T) {
	assert.Nil(t, demoStudents([]shared.CourseID{"A", "B"}))
}
