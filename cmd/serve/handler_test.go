package serve_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/kropki/cmd/serve"
	"github.com/puzzle-framework/kropki/internal/testgrid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// trappedText blanks a vertical pair and pins it with a black dot; the
// column leaves only 5 and 6 for the pair and neither doubles the other.
func trappedText() string {
	text := testgrid.Text(
		testgrid.TransversalBlanks[0], // (0, 0)
	)
	text = strings.Replace(text, "\n6 7 2 1 9 5 3 4 8\n", "\n0 7 2 1 9 5 3 4 8\n", 1)
	return strings.Replace(text, "\n1 0 2 0 0 0 0 0 0\n", "\n2 0 2 0 0 0 0 0 0\n", 1)
}

func postSolve(t *testing.T, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	serve.NewRouter().ServeHTTP(rec, req)
	return rec
}

func marshal(t *testing.T, body any) []byte {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

func TestSolveReturnsTheGridAndCounters(t *testing.T) {
	rec := postSolve(t, marshal(t, serve.SolveRequest{
		Puzzle:          testgrid.Text(testgrid.TransversalBlanks...),
		ForwardChecking: true,
		Heuristic:       "mrv",
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp serve.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testgrid.Solved, resp.Grid)
	assert.Equal(t, 9, resp.Assignments)
	assert.Equal(t, 0, resp.Backtracks)
	assert.NotEmpty(t, resp.Duration)
}

func TestSolveTagsRequests(t *testing.T) {
	rec := postSolve(t, marshal(t, serve.SolveRequest{
		Puzzle: testgrid.Text(testgrid.TransversalBlanks...),
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestSolveRejectsABrokenBody(t *testing.T) {
	rec := postSolve(t, []byte("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveRejectsAMalformedPuzzle(t *testing.T) {
	rec := postSolve(t, marshal(t, serve.SolveRequest{Puzzle: "1 2 3"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to parse puzzle", body["error"])
}

func TestSolveRejectsAnUnknownHeuristic(t *testing.T) {
	rec := postSolve(t, marshal(t, serve.SolveRequest{
		Puzzle:    testgrid.Text(testgrid.TransversalBlanks...),
		Heuristic: "degree",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unknown heuristic", body["error"])
}

func TestSolveReportsAnUnsolvablePuzzle(t *testing.T) {
	rec := postSolve(t, marshal(t, serve.SolveRequest{Puzzle: trappedText()}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Puzzle has no solution", body["error"])
	assert.Equal(t, float64(1), body["assignments"])
	assert.Equal(t, float64(1), body["backtracks"])
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	serve.NewRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
