package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unipath/course-planner/internal/application/query"
	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// memStore is a minimal in-memory planner.GraphStore for endpoint tests.
type memStore struct {
	edges    []planner.RequirementEdge
	courses  map[shared.CourseID]struct{}
	students map[shared.StudentID][]shared.CourseID
}

func newMemStore() *memStore {
	return &memStore{
		courses:  make(map[shared.CourseID]struct{}),
		students: make(map[shared.StudentID][]shared.CourseID),
	}
}

func (m *memStore) addEdge(course, prereq string) {
	m.courses[shared.CourseID(course)] = struct{}{}
	m.courses[shared.CourseID(prereq)] = struct{}{}
	m.edges = append(m.edges, planner.RequirementEdge{
		Course:       shared.CourseID(course),
		Prerequisite: shared.CourseID(prereq),
	})
}

func (m *memStore) EdgesReachableFrom(_ context.Context, course shared.CourseID, maxDepth int) ([]planner.RequirementEdge, error) {
	adj := make(map[shared.CourseID][]planner.RequirementEdge)
	for _, e := range m.edges {
		adj[e.Course] = append(adj[e.Course], e)
	}

	var out []planner.RequirementEdge
	visited := map[shared.CourseID]struct{}{course: {}}
	frontier := []shared.CourseID{course}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []shared.CourseID
		for _, c := range frontier {
			for _, e := range adj[c] {
				out = append(out, e)
				if _, ok := visited[e.Prerequisite]; !ok {
					visited[e.Prerequisite] = struct{}{}
					next = append(next, e.Prerequisite)
				}
			}
		}
		frontier = next
	}
	return out, nil
}

func (m *memStore) AllEdges(context.Context) ([]planner.RequirementEdge, error) {
	return m.edges, nil
}

func (m *memStore) CourseExists(_ context.Context, course shared.CourseID) (bool, error) {
	_, ok := m.courses[course]
	return ok, nil
}

func (m *memStore) StudentExists(_ context.Context, student shared.StudentID) (bool, error) {
	_, ok := m.students[student]
	return ok, nil
}

func (m *memStore) CompletedCourses(_ context.Context, student shared.StudentID) (planner.CompletionSet, error) {
	return planner.NewCompletionSet(m.students[student]), nil
}

func (m *memStore) CoursePrereqCounts(context.Context) ([]planner.CoursePrereqCount, error) {
	counts := make(map[shared.CourseID]int, len(m.courses))
	for c := range m.courses {
		counts[c] = 0
	}
	for _, e := range m.edges {
		counts[e.Course]++
	}
	out := make([]planner.CoursePrereqCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, planner.CoursePrereqCount{Course: c, PrereqCount: n})
	}
	return out, nil
}

func (m *memStore) StudentCount(context.Context) (int, error) {
	return len(m.students), nil
}

func newTestServer(t *testing.T, cfg Config, store *memStore) *Server {
	t.Helper()
	deps := Dependencies{
		CheckEligibilityHandler: query.NewCheckEligibilityHandler(store),
		PlanSequenceHandler:     query.NewPlanSequenceHandler(store),
		FindCyclesHandler:       query.NewFindCyclesHandler(store),
		ShortestPathHandler:     query.NewShortestPathHandler(store),
		SummarizeHandler:        query.NewSummarizeHandler(store, nil, nil),
	}
	return NewServer(cfg, deps)
}

func defaultTestConfig() Config {
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0 // no limiter in tests
	return cfg
}

func doRequest(s *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServer_PlanSequence(t *testing.T) {
	store := newMemStore()
	store.addEdge("B", "A")
	store.addEdge("C", "B")
	store.students["s1"] = nil

	s := newTestServer(t, defaultTestConfig(), store)
	rec := doRequest(s, http.MethodGet, "/api/v1/students/s1/plan/sequence?course=C", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "C", data["target_course"])
	seq := data["sequence"].([]interface{})
	require.Len(t, seq, 3)
	assert.Equal(t, []interface{}{"A"}, seq[0].([]interface{}))
}

func TestServer_PlanSequence_MissingCourseParam(t *testing.T) {
	s := newTestServer(t, defaultTestConfig(), newMemStore())
	rec := doRequest(s, http.MethodGet, "/api/v1/students/s1/plan/sequence", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Eligibility_NotFoundDistinguishesEntities(t *testing.T) {
	store := newMemStore()
	store.addEdge("B", "A")
	store.students["s1"] = nil

	s := newTestServer(t, defaultTestConfig(), store)

	rec := doRequest(s, http.MethodGet, "/api/v1/students/s1/eligibility?course=NOPE", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "course_not_found", decodeEnvelope(t, rec).Error.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/students/ghost/eligibility?course=B", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "student_not_found", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_Eligibility(t *testing.T) {
	store := newMemStore()
	store.addEdge("B", "A")
	store.students["s1"] = []shared.CourseID{"A"}

	s := newTestServer(t, defaultTestConfig(), store)
	rec := doRequest(s, http.MethodGet, "/api/v1/students/s1/eligibility?course=B", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, true, data["eligible"])
}

func TestServer_FindCycles(t *testing.T) {
	store := newMemStore()
	store.addEdge("A", "B")
	store.addEdge("B", "A")
	store.students["s1"] = nil

	s := newTestServer(t, defaultTestConfig(), store)
	rec := doRequest(s, http.MethodGet, "/api/v1/courses/prerequisites/cycles", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
}

func TestServer_FindCycles_InvalidLimit(t *testing.T) {
	s := newTestServer(t, defaultTestConfig(), newMemStore())
	rec := doRequest(s, http.MethodGet, "/api/v1/courses/prerequisites/cycles?limit=9999", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShortestPath_FlagDisabled(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.EnableShortestPath = false

	s := newTestServer(t, cfg, newMemStore())
	rec := doRequest(s, http.MethodGet, "/api/v1/courses/path/shortest?from=A&to=B", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Summary_RequiresAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := defaultTestConfig()
	cfg.APIKeyHashes = []string{string(hash)}

	store := newMemStore()
	store.addEdge("B", "A")
	store.students["s1"] = nil

	s := newTestServer(t, cfg, store)

	rec := doRequest(s, http.MethodGet, "/api/v1/analytics/courses/summary", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/analytics/courses/summary",
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/analytics/courses/summary",
		map[string]string{"X-API-Key": "sekret"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["total_courses"])
}

func TestServer_HealthAndRequestID(t *testing.T) {
	s := newTestServer(t, defaultTestConfig(), newMemStore())

	rec := doRequest(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = doRequest(s, http.MethodGet, "/health", map[string]string{"X-Request-ID": "fixed-id"})
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}
