package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
	"github.com/unipath/course-planner/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG REPOSITORY
// Write side of the catalog, used by the seeding tool. Planning itself is
// read-only and goes through GraphStore.
// ══════════════════════════════════════════════════════════════════════════════

// SeedStudent is a student record with completion facts, as loaded by the
// seeding tool.
type SeedStudent struct {
	ID          shared.StudentID
	DisplayName string
	Completed   []shared.CourseID
}

// CatalogRepository persists catalog and student seed data.
type CatalogRepository struct {
	conn *Connection
	log  *logger.Logger
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(conn *Connection, log *logger.Logger) *CatalogRepository {
	if log == nil {
		log = logger.Default()
	}
	return &CatalogRepository{
		conn: conn,
		log:  log.With(logger.Component("catalog_repo")),
	}
}

// ReplaceCatalog wipes the current catalog and installs the given courses
// and requirement edges in a single transaction. Edge endpoints that are
// not in the course list are inserted as courses too, so the foreign keys
// always hold.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, courses []shared.CourseID, edges []planner.RequirementEdge) error {
	courseSet := make(map[shared.CourseID]struct{}, len(courses))
	for _, c := range courses {
		courseSet[c] = struct{}{}
	}
	for _, e := range edges {
		courseSet[e.Course] = struct{}{}
		courseSet[e.Prerequisite] = struct{}{}
	}

	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE prerequisites, courses CASCADE`); err != nil {
			return fmt.Errorf("truncate catalog: %w", err)
		}

		batch := &pgx.Batch{}
		for course := range courseSet {
			batch.Queue(`INSERT INTO courses (code) VALUES ($1)`, course.String())
		}
		for _, e := range edges {
			batch.Queue(
				`INSERT INTO prerequisites (course_code, prereq_code) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				e.Course.String(), e.Prerequisite.String(),
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("seed catalog batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info("catalog replaced",
		logger.Int("courses", len(courseSet)),
		logger.EdgeCount(len(edges)),
	)
	return nil
}

// ReplaceStudents wipes the student records and installs the given seed
// students with their completion facts.
func (r *CatalogRepository) ReplaceStudents(ctx context.Context, students []SeedStudent) error {
	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE completions, students CASCADE`); err != nil {
			return fmt.Errorf("truncate students: %w", err)
		}

		batch := &pgx.Batch{}
		for _, s := range students {
			batch.Queue(
				`INSERT INTO students (id, display_name) VALUES ($1, $2)`,
				s.ID.String(), s.DisplayName,
			)
			for _, course := range s.Completed {
				batch.Queue(
					`INSERT INTO completions (student_id, course_code) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
					s.ID.String(), course.String(),
				)
			}
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("seed students batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info("students replaced", logger.Int("students", len(students)))
	return nil
}
