// Package postgres implements the PostgreSQL persistence layer for the
// course planner.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE CATALOG
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create course catalog tables
-- Version: 001

-- Course catalog. Codes are the natural key; planning operates on codes,
-- not surrogate ids.
CREATE TABLE IF NOT EXISTS courses (
    code VARCHAR(64) PRIMARY KEY,
    title VARCHAR(255) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT nonempty_code CHECK (length(trim(code)) > 0)
);

-- Requirement edges: course -> prerequisite, meaning the prerequisite must
-- be passed before the course can be taken.
CREATE TABLE IF NOT EXISTS prerequisites (
    course_code VARCHAR(64) NOT NULL REFERENCES courses(code) ON DELETE CASCADE,
    prereq_code VARCHAR(64) NOT NULL REFERENCES courses(code) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (course_code, prereq_code),
    CONSTRAINT no_self_requirement CHECK (course_code != prereq_code)
);

CREATE INDEX IF NOT EXISTS idx_prerequisites_course ON prerequisites(course_code);
CREATE INDEX IF NOT EXISTS idx_prerequisites_prereq ON prerequisites(prereq_code);
`

const migration001Down = `
DROP TABLE IF EXISTS prerequisites;
DROP TABLE IF EXISTS courses;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create student tables
-- Version: 002

CREATE TABLE IF NOT EXISTS students (
    id VARCHAR(64) PRIMARY KEY,
    display_name VARCHAR(100) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT nonempty_student_id CHECK (length(trim(id)) > 0)
);

-- Completion facts: which student passed which course. Completions for
-- courses outside the current catalog are allowed and simply ignored by
-- planning, so there is no foreign key on course_code.
CREATE TABLE IF NOT EXISTS completions (
    student_id VARCHAR(64) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    course_code VARCHAR(64) NOT NULL,
    passed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (student_id, course_code)
);

CREATE INDEX IF NOT EXISTS idx_completions_student ON completions(student_id);
CREATE INDEX IF NOT EXISTS idx_completions_course ON completions(course_code);
`

const migration002Down = `
DROP TABLE IF EXISTS completions;
DROP TABLE IF EXISTS students;
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_catalog",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_students",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
	}
}
