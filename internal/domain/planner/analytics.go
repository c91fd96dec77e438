package planner

import "github.com/unipath/course-planner/internal/domain/shared"

// CoursePrereqCount pairs a course with its direct prerequisite count.
// Produced by the store's one-hop aggregation query.
type CoursePrereqCount struct {
	Course      shared.CourseID
	PrereqCount int
}

// Summary holds population-level rollups over the whole course catalog.
type Summary struct {
	TotalCourses          int     `json:"total_courses"`
	TotalStudents         int     `json:"total_students"`
	AvgPrereqs            float64 `json:"avg_prerequisites"`
	MaxPrereqs            int     `json:"max_prerequisites"`
	CoursesWithoutPrereqs int     `json:"courses_without_prerequisites"`
}

// Summarize aggregates per-course prerequisite counts and the student
// population size. Pure one-hop arithmetic, no traversal.
func Summarize(courses []CoursePrereqCount, studentCount int) Summary {
	s := Summary{
		TotalCourses:  len(courses),
		TotalStudents: studentCount,
	}

	if len(courses) == 0 {
		return s
	}

	total := 0
	for _, c := range courses {
		total += c.PrereqCount
		if c.PrereqCount > s.MaxPrereqs {
			s.MaxPrereqs = c.PrereqCount
		}
		if c.PrereqCount == 0 {
			s.CoursesWithoutPrereqs++
		}
	}
	s.AvgPrereqs = float64(total) / float64(len(courses))

	return s
}
