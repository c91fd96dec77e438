// Package main is the catalog seeding tool.
//
// It reads a prerequisite CSV (one row per course, columns "0".."9" for
// prerequisite codes), replaces the catalog in PostgreSQL, and installs
// a couple of demo students with completion facts so the planning
// endpoints have something to answer about out of the box. It doubles as
// the migration tool: -migrate-status prints the schema state and
// -rollback reverts the most recent migration.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/unipath/course-planner/config"
	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
	"github.com/unipath/course-planner/internal/infrastructure/persistence/postgres"
	rediscache "github.com/unipath/course-planner/internal/infrastructure/persistence/redis"
	"github.com/unipath/course-planner/pkg/logger"
	"github.com/unipath/course-planner/pkg/retry"
)

// prereqColumns is the number of numbered prerequisite columns in the CSV.
const prereqColumns = 10

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	csvPath := flag.String("csv", "data/prerequisites.csv", "path to the prerequisite CSV file")
	withStudents := flag.Bool("students", true, "also create demo students")
	migrateStatus := flag.Bool("migrate-status", false, "print migration status and exit")
	rollback := flag.Bool("rollback", false, "roll back the most recent migration and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	}).With(logger.String("seed_run", uuid.NewString()))

	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	pgCfg := postgres.DefaultConfig()
	pgCfg.URL = cfg.Database.URL
	pgCfg.QueryTimeout = cfg.Database.QueryTimeout

	conn, err := postgres.NewConnection(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close()

	migrator := postgres.NewMigrator(conn)

	if *migrateStatus {
		return printMigrationStatus(ctx, migrator)
	}

	if *rollback {
		if err := migrator.Rollback(ctx); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Info("last migration rolled back")
		return nil
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	courses, edges, err := loadCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", *csvPath, err)
	}
	log.Info("catalog parsed",
		logger.Int("courses", len(courses)),
		logger.EdgeCount(len(edges)),
	)

	repo := postgres.NewCatalogRepository(conn, log)
	retrier := retry.SeedRetrier()

	start := time.Now()
	err = retrier.Do(ctx, func(ctx context.Context) error {
		return classifySeedErr(repo.ReplaceCatalog(ctx, courses, edges))
	})
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	if *withStudents {
		students := demoStudents(courses)
		if students == nil {
			log.Warn("not enough courses for demo students, skipping")
		} else {
			err = retrier.Do(ctx, func(ctx context.Context) error {
				return classifySeedErr(repo.ReplaceStudents(ctx, students))
			})
			if err != nil {
				return fmt.Errorf("failed to seed students: %w", err)
			}
		}
	}

	invalidateSummaryCache(ctx, cfg, log)

	log.Info("seeding complete", logger.Duration("took", time.Since(start)))
	return nil
}

// classifySeedErr decides whether a failed replace is worth retrying.
// Constraint violations come from the data itself and will fail the same
// way on every attempt, so they abort immediately.
func classifySeedErr(err error) error {
	if err == nil {
		return nil
	}
	if postgres.IsUniqueViolation(err) || postgres.IsForeignKeyViolation(err) {
		return retry.Permanent(err)
	}
	return retry.Retryable(err)
}

// printMigrationStatus writes one line per known migration.
func printMigrationStatus(ctx context.Context, migrator *postgres.Migrator) error {
	status, err := migrator.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	for _, mig := range status {
		state := "pending"
		if mig.IsApplied {
			state = "applied " + mig.AppliedAt.Format(time.RFC3339)
		}
		fmt.Printf("%03d %-24s %s\n", mig.Version, mig.Name, state)
	}
	return nil
}

// invalidateSummaryCache drops the cached analytics summary after a
// reseed so the next request recomputes it from the new catalog. Best
// effort: a dead Redis only means the old summary lingers until its TTL.
func invalidateSummaryCache(ctx context.Context, cfg *config.Config, log *logger.Logger) {
	if cfg.Redis.Disabled {
		return
	}

	redisCfg := rediscache.DefaultConfig()
	redisCfg.Host = cfg.Redis.Host
	redisCfg.Port = cfg.Redis.Port
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB
	redisCfg.DialTimeout = cfg.Redis.DialTimeout

	cache, err := rediscache.NewCache(redisCfg)
	if err != nil {
		log.Warn("redis unavailable, cached summary expires by TTL", logger.Err(err))
		return
	}
	defer cache.Close()

	if err := cache.Delete(ctx, rediscache.SummaryKey()); err != nil {
		log.Warn("failed to invalidate summary cache", logger.Err(err))
		return
	}
	log.Info("summary cache invalidated")
}

// loadCSV parses the prerequisite CSV. The first column ("Course") holds
// the course code; columns "0".."9" hold prerequisite codes. Empty cells
// and the placeholders none/nan/n/a are skipped. Prerequisite codes that
// never appear in the Course column still become courses.
func loadCSV(path string) ([]shared.CourseID, []planner.RequirementEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	courseCol := -1
	prereqCols := make(map[int]int) // column index -> prereq slot
	for i, name := range header {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, "Course") {
			courseCol = i
			continue
		}
		for slot := 0; slot < prereqColumns; slot++ {
			if name == fmt.Sprint(slot) {
				prereqCols[i] = slot
			}
		}
	}
	if courseCol < 0 {
		return nil, nil, fmt.Errorf("header has no Course column")
	}

	seen := make(map[shared.CourseID]struct{})
	edgeSeen := make(map[planner.RequirementEdge]struct{})
	var courses []shared.CourseID
	var edges []planner.RequirementEdge

	addCourse := func(code shared.CourseID) {
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			courses = append(courses, code)
		}
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row must fail the whole seed, not truncate it.
			return nil, nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if courseCol >= len(row) {
			continue
		}

		code := strings.TrimSpace(row[courseCol])
		if code == "" {
			continue
		}
		course := shared.CourseID(code)
		addCourse(course)

		for i, cell := range row {
			if _, ok := prereqCols[i]; !ok {
				continue
			}
			prereq := strings.TrimSpace(cell)
			if prereq == "" || isPlaceholder(prereq) {
				continue
			}

			prereqID := shared.CourseID(prereq)
			addCourse(prereqID)

			edge := planner.RequirementEdge{Course: course, Prerequisite: prereqID}
			if _, ok := edgeSeen[edge]; !ok {
				edgeSeen[edge] = struct{}{}
				edges = append(edges, edge)
			}
		}
	}

	return courses, edges, nil
}

// isPlaceholder reports whether a prerequisite cell is a no-value marker.
func isPlaceholder(s string) bool {
	switch strings.ToLower(s) {
	case "none", "nan", "n/a":
		return true
	}
	return false
}

// demoStudents builds two demo students over the first catalog courses in
// code order. Alice has passed two courses, Bob three, which gives the
// eligibility and planning endpoints immediate test material. Returns nil
// when the catalog is too small to make the students meaningful.
func demoStudents(courses []shared.CourseID) []postgres.SeedStudent {
	sorted := make([]shared.CourseID, len(courses))
	copy(sorted, courses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if len(sorted) < 3 {
		return nil
	}

	return []postgres.SeedStudent{
		{
			ID:          "s1",
			DisplayName: "Alice",
			Completed:   []shared.CourseID{sorted[0], sorted[1]},
		},
		{
			ID:          "s2",
			DisplayName: "Bob",
			Completed:   []shared.CourseID{sorted[0], sorted[1], sorted[2]},
		},
	}
}
