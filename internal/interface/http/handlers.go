// Package http implements the REST API for the course planner.
package http

import (
	"errors"
	"net/http"

	"github.com/unipath/course-planner/internal/application/query"
	"github.com/unipath/course-planner/internal/domain/shared"
	"github.com/unipath/course-planner/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Course Planner API",
		"version":     "v1",
		"description": "Prerequisite-aware study planning over the course catalog",
		"endpoints": map[string]string{
			"health":      "/health",
			"eligibility": "/api/v1/students/{id}/eligibility?course=CODE",
			"sequence":    "/api/v1/students/{id}/plan/sequence?course=CODE",
			"cycles":      "/api/v1/courses/prerequisites/cycles",
			"summary":     "/api/v1/analytics/courses/summary",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		report := s.deps.HealthChecker.Check(r.Context())
		if !report.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, report)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		report := s.deps.HealthChecker.Check(r.Context())
		if !report.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": report.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PLANNING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleCheckEligibility handles GET /api/v1/students/{id}/eligibility?course=CODE
func (s *Server) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	if s.deps.CheckEligibilityHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Eligibility handler not configured")
		return
	}

	studentID := r.PathValue("id")
	course := getQueryParam(r, "course", "")
	if course == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "course query parameter is required")
		return
	}

	q := query.CheckEligibilityQuery{
		StudentID: studentID,
		CourseID:  course,
	}

	result, err := s.deps.CheckEligibilityHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, err, "failed to check eligibility")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePlanSequence handles GET /api/v1/students/{id}/plan/sequence?course=CODE
func (s *Server) handlePlanSequence(w http.ResponseWriter, r *http.Request) {
	if s.deps.PlanSequenceHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Sequence handler not configured")
		return
	}

	studentID := r.PathValue("id")
	course := getQueryParam(r, "course", "")
	if course == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "course query parameter is required")
		return
	}

	q := query.PlanSequenceQuery{
		StudentID: studentID,
		CourseID:  course,
	}

	result, err := s.deps.PlanSequenceHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, err, "failed to plan sequence")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleFindCycles handles GET /api/v1/courses/prerequisites/cycles?limit=N
func (s *Server) handleFindCycles(w http.ResponseWriter, r *http.Request) {
	if s.deps.FindCyclesHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Cycles handler not configured")
		return
	}

	q := query.FindCyclesQuery{
		Limit: getQueryParamInt(r, "limit", 0),
	}

	cycles, err := s.deps.FindCyclesHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, err, "failed to detect cycles")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cycles": cycles,
		"count":  len(cycles),
	})
}

// handleShortestPath handles GET /api/v1/courses/path/shortest?from=CODE&to=CODE
func (s *Server) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	if s.deps.ShortestPathHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Path handler not configured")
		return
	}

	from := getQueryParam(r, "from", "")
	to := getQueryParam(r, "to", "")
	if from == "" || to == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "from and to query parameters are required")
		return
	}

	q := query.ShortestPathQuery{
		FromCourse: from,
		ToCourse:   to,
	}

	result, err := s.deps.ShortestPathHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, err, "failed to find path")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ANALYTICS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleSummary handles GET /api/v1/analytics/courses/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.SummarizeHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Summary handler not configured")
		return
	}

	result, err := s.deps.SummarizeHandler.Handle(r.Context())
	if err != nil {
		s.writeQueryError(w, r, err, "failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeQueryError maps application errors onto HTTP responses. Not-found
// errors name the missing entity so callers can tell an unknown student
// from an unknown course.
func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, shared.ErrCourseNotFound):
		writeJSONError(w, http.StatusNotFound, "course_not_found", "Course not found")

	case errors.Is(err, shared.ErrStudentNotFound):
		writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")

	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())

	case shared.IsUpstream(err):
		s.logger.Error(logMsg,
			logger.Err(err),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusServiceUnavailable, "upstream_unavailable", "Graph store is unavailable, try again later")

	default:
		s.logger.Error(logMsg,
			logger.Err(err),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
