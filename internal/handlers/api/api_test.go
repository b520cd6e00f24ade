package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yorkfacts/internal/facts"
	"yorkfacts/internal/logger"
	"yorkfacts/internal/models"
	"yorkfacts/internal/similarity"
	"yorkfacts/internal/testutil"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

var marsh = models.Fact{
	Question: "What is Ontario's vegetable patch?",
	Answer:   "Holland Marsh.",
	Location: "King",
	Category: "Physiographic",
}

func newTestApp(t *testing.T, st *testutil.MemoryStore) *fiber.App {
	t.Helper()

	gate, err := similarity.NewGate(0.65, similarity.MetricDice)
	require.NoError(t, err)
	svc := facts.NewService(st, gate, nil, nil, logger.Discard())

	factHandler := NewFactHandler(svc)
	quizHandler := NewQuizHandler(svc)

	app := fiber.New()
	app.Get("/api/facts", factHandler.List)
	app.Post("/api/facts/check", factHandler.Check)
	app.Get("/api/options", factHandler.Options)
	app.Get("/api/quiz/random", quizHandler.Random)
	app.Post("/api/quiz/guess", quizHandler.Guess)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestListFacts(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore(marsh))

	status, env := call(t, app, http.MethodGet, "/api/facts", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", env.Status)

	var list []models.Fact
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, marsh.Question, list[0].Question)
}

func TestListFactsEmptyIsArray(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore())

	_, env := call(t, app, http.MethodGet, "/api/facts", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestListFactsReadError(t *testing.T) {
	st := testutil.NewMemoryStore()
	st.ReadErr = errors.New("boom")
	app := newTestApp(t, st)

	status, env := call(t, app, http.MethodGet, "/api/facts", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "error", env.Status)
}

func TestCheck(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore(marsh))

	status, env := call(t, app, http.MethodPost, "/api/facts/check", `{"question":"What's Ontario's vegetable patch"}`)
	require.Equal(t, fiber.StatusOK, status)

	var res models.SimilarityCheckResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.TooSimilar)
	assert.Equal(t, marsh.Question, res.Match)

	status, env = call(t, app, http.MethodPost, "/api/facts/check", `{"question":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "question is required", env.Error)

	status, _ = call(t, app, http.MethodPost, "/api/facts/check", `nope`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOptions(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore())

	status, env := call(t, app, http.MethodGet, "/api/options", "")
	require.Equal(t, fiber.StatusOK, status)

	var opts models.OptionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Contains(t, opts.Locations, "Whitchurch-Stouffville")
	assert.Contains(t, opts.Categories, "Physiographic")
}

func TestQuizRandom(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore(marsh))

	status, env := call(t, app, http.MethodGet, "/api/quiz/random", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(env.Data), "Holland Marsh.")

	var q models.QuizQuestion
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.Equal(t, marsh.Question, q.Question)

	empty := newTestApp(t, testutil.NewMemoryStore())
	status, _ = call(t, empty, http.MethodGet, "/api/quiz/random", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestQuizGuess(t *testing.T) {
	app := newTestApp(t, testutil.NewMemoryStore(marsh))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		correct    bool
	}{
		{"right", `{"question":"What is Ontario's vegetable patch?","location":"king"}`, fiber.StatusOK, true},
		{"wrong", `{"question":"What is Ontario's vegetable patch?","location":"Vaughan"}`, fiber.StatusOK, false},
		{"unknown question", `{"question":"Huh?","location":"King"}`, fiber.StatusNotFound, false},
		{"missing location", `{"question":"Huh?"}`, fiber.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, http.MethodPost, "/api/quiz/guess", tt.body)
			require.Equal(t, tt.wantStatus, status)
			if status != fiber.StatusOK {
				assert.Equal(t, "error", env.Status)
				return
			}

			var res models.GuessResult
			require.NoError(t, json.Unmarshal(env.Data, &res))
			assert.Equal(t, tt.correct, res.Correct)
			assert.Equal(t, "Holland Marsh.", res.Answer)
		})
	}
}
