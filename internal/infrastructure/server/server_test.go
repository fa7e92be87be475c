package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/config"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/storage"
)

func testConfig(path string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "Responder", Version: "test"},
		Server:  config.ServerConfig{Port: 3000, RequestTimeout: 5 * time.Second},
		Storage: config.StorageConfig{Path: path},
		Logger:  config.LoggerConfig{Level: "info", Format: "json"},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Second,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, storage.Init(path, false))
	if cfg == nil {
		cfg = testConfig(path)
	}
	cfg.Storage.Path = path

	store, err := storage.Open(cfg.Storage)
	require.NoError(t, err)

	srv, err := New(cfg, store, logger.NewNop())
	require.NoError(t, err)
	return srv, path
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestWelcome(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to responder!"}`, rec.Body.String())
}

func TestQuestionsAPI(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/questions",
		`{"summary":"What is my name?","author":"Jack London","answers":["ignored"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]string](t, rec)
	assert.Equal(t, "Question added", created["message"])
	questionID := created["id"]
	require.NotEmpty(t, questionID)

	rec = do(t, srv, http.MethodGet, "/questions/"+questionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	question := decode[entities.Question](t, rec)
	assert.Equal(t, "What is my name?", question.Summary)
	assert.Equal(t, "Jack London", question.Author)
	assert.NotNil(t, question.Answers)
	assert.Empty(t, question.Answers)

	rec = do(t, srv, http.MethodGet, "/questions/"+questionID+"/answers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/questions/"+questionID+"/answers",
		`{"author":"Dr Strange","summary":"It is egg-shaped."}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[map[string]string](t, rec)
	assert.Equal(t, "Answer added", added["message"])
	answerID := added["id"]

	rec = do(t, srv, http.MethodGet, "/questions/"+questionID+"/answers/"+answerID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	answer := decode[entities.Answer](t, rec)
	assert.Equal(t, entities.Answer{ID: answerID, Author: "Dr Strange", Summary: "It is egg-shaped."}, answer)

	rec = do(t, srv, http.MethodGet, "/questions/"+questionID+"/answers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.Answer](t, rec), 1)

	rec = do(t, srv, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.Question](t, rec), 1)
}

func TestQuestionsAPINotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/questions", `{"summary":"s","author":"a"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := decode[map[string]string](t, rec)["id"]

	cases := []struct {
		name   string
		method string
		target string
		body   string
		error  string
	}{
		{name: "question", method: http.MethodGet, target: "/questions/" + uuid.NewString(), error: "Question not found"},
		{name: "answers of missing question", method: http.MethodGet, target: "/questions/" + uuid.NewString() + "/answers", error: "Question not found"},
		{name: "answer of missing question", method: http.MethodGet, target: "/questions/" + uuid.NewString() + "/answers/" + uuid.NewString(), error: "Question not found"},
		{name: "missing answer", method: http.MethodGet, target: "/questions/" + questionID + "/answers/" + uuid.NewString(), error: "Answer not found"},
		{name: "add answer to missing question", method: http.MethodPost, target: "/questions/" + uuid.NewString() + "/answers", body: `{"author":"a","summary":"s"}`, error: "Question not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.error+`"}`, rec.Body.String())
		})
	}
}

func TestQuestionsAPIValidation(t *testing.T) {
	srv, path := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/questions", `{"summary":"s","author":"a"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := decode[map[string]string](t, rec)["id"]

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	cases := []struct {
		name   string
		target string
		body   string
	}{
		{name: "question without author", target: "/questions", body: `{"summary":"s"}`},
		{name: "question with empty summary", target: "/questions", body: `{"summary":"","author":"a"}`},
		{name: "question with numeric author", target: "/questions", body: `{"summary":"s","author":5}`},
		{name: "question with non-string answers", target: "/questions", body: `{"summary":"s","author":"a","answers":[1]}`},
		{name: "question with malformed json", target: "/questions", body: `{"summary":`},
		{name: "question with empty answer item", target: "/questions", body: `{"summary":"s","author":"a","answers":["x",""]}`},
		{name: "answer without summary", target: "/questions/" + questionID + "/answers", body: `{"author":"a"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tc.target, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Check your data"}`, rec.Body.String())
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestQuestionsAPIStorageFailure(t *testing.T) {
	srv, path := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	for _, target := range []string{"/questions", "/questions/x", "/questions/x/answers", "/questions/x/answers/y"} {
		rec := do(t, srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	}

	rec := do(t, srv, http.MethodPost, "/questions", `{"summary":"s","author":"a"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/health/detailed", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detailed := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "ok", detailed["status"])

	do(t, srv, http.MethodGet, "/questions", "")

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `responder_store_operations_total{operation="list_questions",result="ok"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig("")
	cfg.Metrics.Enabled = false
	srv, _ := newTestServer(t, cfg)

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig("")
	cfg.Security.RateLimitRequests = 2
	cfg.Security.RateLimitWindow = time.Hour
	srv, _ := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/", "").Code)

	rec := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestSwaggerDocs(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/questions/{questionId}/answers/{answerId}")
}

func doForm(t *testing.T, srv *Server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestQuestionsAPIFormBodies(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doForm(t, srv, "/questions", url.Values{
		"summary": {"What is my name?"},
		"author":  {"Jack London"},
		"answers": {"ignored", "also ignored"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	questionID := decode[map[string]string](t, rec)["id"]
	require.NotEmpty(t, questionID)

	rec = doForm(t, srv, "/questions/"+questionID+"/answers", url.Values{
		"author":  {"Dr Strange"},
		"summary": {"It is egg-shaped."},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answerID := decode[map[string]string](t, rec)["id"]

	rec = do(t, srv, http.MethodGet, "/questions/"+questionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	question := decode[entities.Question](t, rec)
	assert.Equal(t, "What is my name?", question.Summary)
	assert.Equal(t, "Jack London", question.Author)
	assert.Equal(t, []entities.Answer{{ID: answerID, Summary: "It is egg-shaped.", Author: "Dr Strange"}}, question.Answers)

	rec = doForm(t, srv, "/questions", url.Values{"summary": {"no author"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Check your data"}`, rec.Body.String())
}

func TestQuestionsAPINullAnswersTreatedAsAbsent(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/questions", `{"summary":"s","author":"a","answers":null}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/questions/"+decode[map[string]string](t, rec)["id"], "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[entities.Question](t, rec).Answers)
}

func TestProductionHidesSwagger(t *testing.T) {
	cfg := testConfig("")
	cfg.App.Environment = "production"
	srv, _ := newTestServer(t, cfg)

	rec := do(t, srv, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
