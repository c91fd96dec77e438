// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// CourseID represents a unique course code, e.g. "CS 225" or "MATH241".
// It is an opaque identifier: the planner never interprets its structure.
type CourseID string

// Course codes are department-style strings: letters, digits, spaces,
// dashes. Bounded so malformed input cannot smuggle arbitrary payloads
// into store queries.
var courseIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]{0,63}$`)

// IsValid checks if the course code is well-formed.
func (c CourseID) IsValid() bool {
	return courseIDRegex.MatchString(string(c))
}

// String returns the string representation.
func (c CourseID) String() string {
	return string(c)
}

// IsEmpty checks if the course code is empty.
func (c CourseID) IsEmpty() bool {
	return c == ""
}

// NewCourseID creates a new CourseID with validation.
func NewCourseID(code string) (CourseID, error) {
	id := CourseID(strings.TrimSpace(code))
	if !id.IsValid() {
		return "", ErrInvalidCourseID
	}
	return id, nil
}

// StudentID represents a unique student identifier.
type StudentID string

var studentIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// IsValid checks if the student ID is well-formed.
func (s StudentID) IsValid() bool {
	return studentIDRegex.MatchString(string(s))
}

// String returns the string representation.
func (s StudentID) String() string {
	return string(s)
}

// IsEmpty checks if the ID is empty.
func (s StudentID) IsEmpty() bool {
	return s == ""
}

// NewStudentID creates a new StudentID with validation.
func NewStudentID(id string) (StudentID, error) {
	sid := StudentID(strings.TrimSpace(id))
	if !sid.IsValid() {
		return "", ErrInvalidStudent
	}
	return sid, nil
}
