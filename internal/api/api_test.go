package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/api"
	"github.com/qazaqstep/qazaqstep/internal/auth"
	"github.com/qazaqstep/qazaqstep/internal/catalog"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/seed"
	"github.com/qazaqstep/qazaqstep/internal/services"
	"github.com/qazaqstep/qazaqstep/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithClock(t, clock.System{})
}

func newTestServerWithClock(t *testing.T, clk clock.Clock) *httptest.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	require.NoError(t, seed.Lessons(t.Context(), database))

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	badgeEngine := &engine.BadgeEngine{Catalog: catalog.Badges()}

	srv := &api.Server{
		DB:         database,
		Clock:      clk,
		Tokens:     tokens,
		Auth:       services.NewAuthService(database, tokens, clk),
		Lessons:    services.NewLessonService(database, badgeEngine, clk),
		Vocabulary: services.NewVocabularyService(database, clk, 10),
		Placement:  services.NewPlacementService(database, clk),
		Badges:     services.NewBadgeService(database, badgeEngine, clk),
		Analytics:  services.NewAnalyticsService(database, clk, 2, 5),
		StaticDir:  t.TempDir(),
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func registerUser(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"email":    "aigul@example.kz",
		"username": "aigul",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/lessons", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/lessons", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLessonFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/lessons", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lessons, ok := payload["lessons"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, lessons)
	first := lessons[0].(map[string]any)
	lessonID := first["id"].(string)

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/lessons/"+lessonID+"/complete", token, map[string]any{
		"score":      90,
		"time_spent": 300,
		"mistakes":   []string{"verb endings"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(18), payload["points_earned"])
	assert.Equal(t, float64(1), payload["current_streak"])

	// Completing the same lesson again the same day is rejected.
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/lessons/"+lessonID+"/complete", token, map[string]any{
		"score":      90,
		"time_spent": 300,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "DUPLICATE_COMPLETION", errObj["code"])

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(18), payload["total_points"])
}

func TestPlacementFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/placement/questions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions := payload["questions"].([]any)
	require.Len(t, questions, 15)

	// Correct indices never leave the server.
	for _, q := range questions {
		_, leaked := q.(map[string]any)["correct"]
		assert.False(t, leaked)
	}

	answers := map[string]int{}
	for _, q := range catalog.PlacementBank() {
		answers[q.ID] = q.Correct
	}
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/placement/submit", token, map[string]any{
		"answers": answers,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := payload["record"].(map[string]any)
	assert.Equal(t, "B1", record["determined_level"])
	assert.Equal(t, float64(100), record["score"])

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/placement/questions", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "ALREADY_COMPLETED", errObj["code"])
}

func TestMonthlyStatsDefaultToServerClock(t *testing.T) {
	frozen := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ts := newTestServerWithClock(t, clock.Fixed{T: frozen})
	token := registerUser(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/lessons", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lessonID := payload["lessons"].([]any)[0].(map[string]any)["id"].(string)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/lessons/"+lessonID+"/complete", token, map[string]any{
		"score":      80,
		"time_spent": 300,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Without ?month the server's injected clock picks the month.
	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/analytics/monthly-stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-06", payload["month"])
	assert.Equal(t, float64(1), payload["lessons_completed"])

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/analytics/monthly-stats?month=2024-01", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), payload["lessons_completed"])
}

func TestVocabularyFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/vocabulary/add", token, map[string]string{
		"word":        "Сәлем",
		"translation": "Hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cardID := payload["id"].(string)

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/vocabulary/due", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["count"])
	dueCard := payload["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, "Сәлем", dueCard["word"])
	assert.NotContains(t, dueCard, "translation", "review prompt must not reveal the answer")

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/vocabulary/review", token, map[string]any{
		"card_id": cardID,
		"quality": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), payload["points_earned"])

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/vocabulary/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["total_cards"])
}
