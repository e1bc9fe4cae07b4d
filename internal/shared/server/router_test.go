package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-coach/internal/coach"
	"career-coach/internal/interviews"
	"career-coach/internal/learningpaths"
	"career-coach/internal/llm"
	"career-coach/internal/profiles"
	"career-coach/internal/resumes"
	"career-coach/internal/services/health"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/server/middleware"
	"career-coach/internal/shared/telemetry"
)

// scriptedLLM answers by prompt content so one client can serve all three shapes.
type scriptedLLM struct {
	mu       sync.Mutex
	requests []llm.Request
	fail     bool
}

func (s *scriptedLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return "", llm.Provider("openai", 500, nil)
	}
	switch {
	case req.JSONObject:
		return "```json\n" + `{"career_level":"mid","strength_areas":["Go"],"improvement_areas":["design"],"career_pattern":"steady","market_competitiveness":8,"personality_traits":["curious"],"growth_trajectory":"up"}` + "\n```", nil
	case req.MaxTokens == 2000:
		return `[{"question":"Q1","category":"technical","difficulty_level":"hard","suggested_answer_approach":"A1"}]`, nil
	default:
		return `Here you go: [{"phase":"Phase 1","duration_weeks":12,"objectives":["deepen Go"],"resources":[{"title":"Go docs","url":"https://go.dev"}],"milestones":["ship"]}]`, nil
	}
}

func newTestRouter(t *testing.T, client llm.Client, cfg config.Config) *httptestServer {
	t.Helper()
	restore := telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(restore)

	gen := coach.NewGenerator(client, "gpt-4o-mini", time.Second)
	gen.RetryDelay = time.Millisecond

	profileRepo := profiles.NewMemoryRepo()
	sessionRepo := interviews.NewMemoryRepo()
	pathRepo := learningpaths.NewMemoryRepo()
	profileSvc := &profiles.Service{Repo: profileRepo, Feedback: profileRepo, Analyzer: gen, Sessions: sessionRepo, Paths: pathRepo}

	r, err := NewRouter(RouterDeps{
		Config:        cfg,
		Health:        health.NewService("test", "openai", nil),
		Profiles:      profiles.NewHandler(profileSvc),
		Interviews:    interviews.NewHandler(&interviews.Service{Repo: sessionRepo, Profiles: profileSvc, Generator: gen}),
		LearningPaths: learningpaths.NewHandler(&learningpaths.Service{Repo: pathRepo, Profiles: profileSvc, Generator: gen}),
		Resumes:       resumes.NewHandler(),
		Limiter:       middleware.NewRateLimiter(nil),
	})
	require.NoError(t, err)
	return &httptestServer{t: t, h: r}
}

type httptestServer struct {
	t *testing.T
	h http.Handler
}

func (s *httptestServer) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.h.ServeHTTP(resp, req)
	var out map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	return resp, out
}

func profileBody() map[string]any {
	return map[string]any{
		"career_summary":   "Backend engineer building payment APIs in Go",
		"job_role":         "Backend Engineer",
		"technical_skills": "Go, PostgreSQL, Docker",
		"experience_years": 4,
	}
}

func TestEndToEndGenerationFlow(t *testing.T) {
	client := &scriptedLLM{}
	srv := newTestRouter(t, client, config.Config{Env: "dev"})

	resp, profile := srv.do(http.MethodPost, "/api/v1/profiles", profileBody())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	profileID, _ := profile["id"].(string)
	analysis, _ := profile["analysis_result"].(map[string]any)
	assert.Equal(t, float64(8), analysis["market_competitiveness"])

	resp, session := srv.do(http.MethodPost, "/api/v1/interview-sessions", map[string]any{"profile_id": profileID})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	questions, _ := session["questions"].([]any)
	require.Len(t, questions, 5)
	first, _ := questions[0].(map[string]any)
	assert.Equal(t, "advanced", first["difficulty_level"])

	resp, path := srv.do(http.MethodPost, "/api/v1/learning-paths", map[string]any{"profile_id": profileID, "target_goal": "promotion"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	roadmap, _ := path["learning_roadmap"].([]any)
	require.Len(t, roadmap, 1)
	step, _ := roadmap[0].(map[string]any)
	assert.Equal(t, []any{"Go docs - https://go.dev"}, step["resources"])

	resp, insights := srv.do(http.MethodGet, "/api/v1/profiles/"+profileID+"/insights", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	summary, _ := insights["profile_summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["created_sessions"])
	assert.Equal(t, float64(1), summary["created_learning_paths"])

	require.Len(t, client.requests, 3)
}

func TestValidationUsesJSONFieldNames(t *testing.T) {
	srv := newTestRouter(t, &scriptedLLM{}, config.Config{Env: "dev"})
	body := profileBody()
	body["technical_skills"] = "Go only here"

	resp, out := srv.do(http.MethodPost, "/api/v1/profiles", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	errBody, _ := out["error"].(map[string]any)
	details, _ := errBody["details"].([]any)
	require.NotEmpty(t, details)
	issue, _ := details[0].(map[string]any)
	assert.Equal(t, "technical_skills", issue["field"])
	assert.Equal(t, "skills", issue["issue"])
}

func TestGatewayFailureReturns502AndStoresNothing(t *testing.T) {
	client := &scriptedLLM{fail: true}
	srv := newTestRouter(t, client, config.Config{Env: "dev"})

	resp, out := srv.do(http.MethodPost, "/api/v1/profiles", profileBody())
	require.Equal(t, http.StatusBadGateway, resp.Code)
	errBody, _ := out["error"].(map[string]any)
	assert.Equal(t, "generation_failed", errBody["code"])
	require.Len(t, client.requests, 1, "provider failures are not retried")
}

func TestGenerationRoutesAreRateLimited(t *testing.T) {
	srv := newTestRouter(t, &scriptedLLM{}, config.Config{Env: "dev", RateLimitRPS: 0.001, RateLimitBurst: 1})

	resp, _ := srv.do(http.MethodPost, "/api/v1/profiles", profileBody())
	require.Equal(t, http.StatusCreated, resp.Code)
	resp, _ = srv.do(http.MethodPost, "/api/v1/profiles", profileBody())
	require.Equal(t, http.StatusTooManyRequests, resp.Code)

	resp, _ = srv.do(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestHealthMetricsAndUnknownRoute(t *testing.T) {
	srv := newTestRouter(t, &scriptedLLM{}, config.Config{Env: "dev"})

	resp, out := srv.do(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "memory", out["storage"])

	resp, _ = srv.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "generation_started_total"))

	resp, out = srv.do(http.MethodGet, "/api/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	errBody, _ := out["error"].(map[string]any)
	assert.Equal(t, "not_found", errBody["code"])
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}
