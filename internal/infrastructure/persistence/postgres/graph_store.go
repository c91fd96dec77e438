package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
	"github.com/unipath/course-planner/pkg/circuitbreaker"
	"github.com/unipath/course-planner/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRAPH STORE
// Relational implementation of the planner.GraphStore port. Bounded
// traversals are pushed into the database as recursive CTEs so the core
// only ever sees the edge slice it asked for.
// ══════════════════════════════════════════════════════════════════════════════

// GraphStore reads the requirement graph and completion facts from
// PostgreSQL. A circuit breaker guards every query; when the circuit is
// open, calls fail fast with shared.ErrStoreUnavailable instead of piling
// up on a dead pool.
type GraphStore struct {
	conn    *Connection
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// NewGraphStore creates a new GraphStore.
func NewGraphStore(conn *Connection, log *logger.Logger) *GraphStore {
	if log == nil {
		log = logger.Default()
	}
	store := &GraphStore{
		conn: conn,
		log:  log.With(logger.Component("graph_store")),
	}
	store.breaker = circuitbreaker.DatabaseBreaker(func(name string, from, to circuitbreaker.State) {
		store.log.Warn("circuit state changed",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	})
	return store
}

// execute runs fn through the circuit breaker and maps infrastructure
// failures onto the store error taxonomy. Each query is bounded by the
// connection's QueryTimeout so a stuck statement cannot hold a request
// open until the HTTP write timeout.
func (s *GraphStore) execute(ctx context.Context, op string, fn func(context.Context) error) error {
	if timeout := s.conn.config.QueryTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := s.breaker.Execute(ctx, fn)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrTooManyRequests),
		errors.Is(err, ErrConnectionClosed):
		return shared.WrapError("store", op, shared.ErrUpstreamUnavailable, "graph store unreachable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return shared.WrapError("store", op, shared.ErrTimeout, "graph store query timed out", err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return shared.WrapError("store", op, shared.ErrUpstreamUnavailable, "graph store query failed", err)
	}
}

// EdgesReachableFrom returns the requirement edges reachable from the
// course within maxDepth hops, bounded to avoid unbounded scans on
// pathological catalogs.
func (s *GraphStore) EdgesReachableFrom(ctx context.Context, course shared.CourseID, maxDepth int) ([]planner.RequirementEdge, error) {
	const query = `
		WITH RECURSIVE reach(course_code, prereq_code, depth) AS (
			SELECT p.course_code, p.prereq_code, 1
			FROM prerequisites p
			WHERE p.course_code = $1
			UNION
			SELECT p.course_code, p.prereq_code, r.depth + 1
			FROM prerequisites p
			JOIN reach r ON p.course_code = r.prereq_code
			WHERE r.depth < $2
		)
		SELECT DISTINCT course_code, prereq_code
		FROM reach
		LIMIT $3
	`

	var edges []planner.RequirementEdge
	err := s.execute(ctx, "EdgesReachableFrom", func(ctx context.Context) error {
		rows, err := s.conn.Query(ctx, query, course.String(), maxDepth, planner.MaxReachableEdges)
		if err != nil {
			return fmt.Errorf("query reachable edges: %w", err)
		}
		defer rows.Close()

		edges = edges[:0]
		for rows.Next() {
			var courseCode, prereqCode string
			if err := rows.Scan(&courseCode, &prereqCode); err != nil {
				return fmt.Errorf("scan edge row: %w", err)
			}
			edges = append(edges, planner.RequirementEdge{
				Course:       shared.CourseID(courseCode),
				Prerequisite: shared.CourseID(prereqCode),
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("fetched reachable edges",
		logger.CourseCode(course.String()),
		logger.EdgeCount(len(edges)),
	)
	return edges, nil
}

// AllEdges returns every requirement edge in the catalog.
func (s *GraphStore) AllEdges(ctx context.Context) ([]planner.RequirementEdge, error) {
	const query = `SELECT course_code, prereq_code FROM prerequisites ORDER BY course_code, prereq_code`

	var edges []planner.RequirementEdge
	err := s.execute(ctx, "AllEdges", func(ctx context.Context) error {
		rows, err := s.conn.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("query all edges: %w", err)
		}
		defer rows.Close()

		edges = edges[:0]
		for rows.Next() {
			var courseCode, prereqCode string
			if err := rows.Scan(&courseCode, &prereqCode); err != nil {
				return fmt.Errorf("scan edge row: %w", err)
			}
			edges = append(edges, planner.RequirementEdge{
				Course:       shared.CourseID(courseCode),
				Prerequisite: shared.CourseID(prereqCode),
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// CourseExists reports whether the course is present in the catalog.
func (s *GraphStore) CourseExists(ctx context.Context, course shared.CourseID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`

	var exists bool
	err := s.execute(ctx, "CourseExists", func(ctx context.Context) error {
		return s.conn.QueryRow(ctx, query, course.String()).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// StudentExists reports whether the student is known.
func (s *GraphStore) StudentExists(ctx context.Context, student shared.StudentID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`

	var exists bool
	err := s.execute(ctx, "StudentExists", func(ctx context.Context) error {
		return s.conn.QueryRow(ctx, query, student.String()).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CompletedCourses returns the student's completion set. An existing
// student with no completions yields an empty set.
func (s *GraphStore) CompletedCourses(ctx context.Context, student shared.StudentID) (planner.CompletionSet, error) {
	const query = `SELECT course_code FROM completions WHERE student_id = $1`

	var completed []shared.CourseID
	err := s.execute(ctx, "CompletedCourses", func(ctx context.Context) error {
		rows, err := s.conn.Query(ctx, query, student.String())
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}
		defer rows.Close()

		completed = completed[:0]
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				return fmt.Errorf("scan completion row: %w", err)
			}
			completed = append(completed, shared.CourseID(code))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return planner.NewCompletionSet(completed), nil
}

// CoursePrereqCounts returns every course with its direct prerequisite count.
func (s *GraphStore) CoursePrereqCounts(ctx context.Context) ([]planner.CoursePrereqCount, error) {
	const query = `
		SELECT c.code, COUNT(p.prereq_code)
		FROM courses c
		LEFT JOIN prerequisites p ON p.course_code = c.code
		GROUP BY c.code
		ORDER BY c.code
	`

	var counts []planner.CoursePrereqCount
	err := s.execute(ctx, "CoursePrereqCounts", func(ctx context.Context) error {
		rows, err := s.conn.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("query prereq counts: %w", err)
		}
		defer rows.Close()

		counts = counts[:0]
		for rows.Next() {
			var code string
			var count int
			if err := rows.Scan(&code, &count); err != nil {
				return fmt.Errorf("scan count row: %w", err)
			}
			counts = append(counts, planner.CoursePrereqCount{
				Course:      shared.CourseID(code),
				PrereqCount: count,
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// StudentCount returns the student population size.
func (s *GraphStore) StudentCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM students`

	var count int
	err := s.execute(ctx, "StudentCount", func(ctx context.Context) error {
		return s.conn.QueryRow(ctx, query).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
