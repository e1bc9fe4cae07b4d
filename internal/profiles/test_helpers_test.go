package profiles

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"career-coach/internal/coach"
	"career-coach/internal/shared/server/respond"
)

var fixedNow = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

type fakeAnalyzer struct {
	mu       sync.Mutex
	calls    []coach.AnalysisRequest
	analysis coach.CareerAnalysis
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req coach.AnalysisRequest) (coach.CareerAnalysis, coach.Metadata, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.err != nil {
		return coach.CareerAnalysis{}, coach.Metadata{}, f.err
	}
	return f.analysis, coach.Metadata{
		ProcessType:           coach.ProcessType(coach.ShapeAnalysis),
		ModelUsed:             "test-model",
		GenerationTimeSeconds: 0.42,
		Timestamp:             fixedNow,
	}, nil
}

type fixedCounter struct {
	n   int
	err error
}

func (c fixedCounter) CountByProfile(ctx context.Context, profileID string) (int, error) {
	return c.n, c.err
}

func sampleAnalysis() coach.CareerAnalysis {
	return coach.CareerAnalysis{
		CareerLevel:           "mid-level backend engineer",
		StrengthAreas:         []string{"Go", "distributed systems"},
		ImprovementAreas:      []string{"frontend"},
		CareerPattern:         "steady specialisation",
		MarketCompetitiveness: 7,
		PersonalityTraits:     []string{"curious"},
		GrowthTrajectory:      "toward staff engineer",
	}
}

func newTestService(analyzer Analyzer) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{
		Repo:     repo,
		Feedback: repo,
		Analyzer: analyzer,
		Now:      func() time.Time { return fixedNow },
	}, repo
}

var bindingOnce sync.Once

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			t.Fatalf("unexpected validator engine")
		}
		respond.UseJSONFieldNames(v)
		if err := RegisterValidations(v); err != nil {
			t.Fatalf("RegisterValidations: %v", err)
		}
	})
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}
