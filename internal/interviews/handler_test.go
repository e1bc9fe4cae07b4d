package interviews

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"career-coach/internal/llm"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, resp.Body.String())
	}
	return body.Error.Code
}

func TestCreateSessionHandlerStatuses(t *testing.T) {
	analyzed := analyzedProfile()
	bare := analyzedProfile()
	bare.Analysis = nil

	tests := []struct {
		name   string
		gen    *fakeGenerator
		body   map[string]any
		status int
		code   string
	}{
		{name: "created", gen: &fakeGenerator{}, body: map[string]any{"profile_id": analyzed.ID, "target_company_type": "large", "target_position_level": "senior"}, status: http.StatusCreated},
		{name: "bad company type", gen: &fakeGenerator{}, body: map[string]any{"profile_id": analyzed.ID, "target_company_type": "agency"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "bad profile id", gen: &fakeGenerator{}, body: map[string]any{"profile_id": "abc"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "unknown profile", gen: &fakeGenerator{}, body: map[string]any{"profile_id": uuid.NewString()}, status: http.StatusNotFound, code: "not_found"},
		{name: "analysis missing", gen: &fakeGenerator{}, body: map[string]any{"profile_id": bare.ID}, status: http.StatusConflict, code: "analysis_required"},
		{name: "gateway failure", gen: &fakeGenerator{err: llm.Provider("openai", 503, nil)}, body: map[string]any{"profile_id": analyzed.ID}, status: http.StatusBadGateway, code: "generation_failed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.gen, analyzed, bare)
			resp := postJSON(t, newTestRouter(svc), "/api/v1/interview-sessions", tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			if tt.code != "" {
				if got := errorCode(t, resp); got != tt.code {
					t.Fatalf("expected code %q, got %q", tt.code, got)
				}
			}
		})
	}
}

func TestGetSessionHandler(t *testing.T) {
	profile := analyzedProfile()
	svc, _ := newTestService(&fakeGenerator{}, profile)
	r := newTestRouter(svc)

	created := postJSON(t, r, "/api/v1/interview-sessions", map[string]any{"profile_id": profile.ID})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", created.Code)
	}
	var session Session
	if err := json.Unmarshal(created.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interview-sessions/"+session.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got Session
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Questions) != 5 || got.TargetPositionLevel != LevelJunior {
		t.Fatalf("unexpected session %+v", got)
	}

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/v1/interview-sessions/"+uuid.NewString(), nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}
