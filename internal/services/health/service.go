package health

import (
	"context"
	"database/sql"
	"time"

	"career-coach/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Features served by this build.
var Features = []string{
	"career_analysis",
	"interview_questions",
	"learning_paths",
	"resume_import",
	"feedback",
}

// Status is the /health payload.
type Status struct {
	Status      string   `json:"status"`
	Version     string   `json:"version"`
	Features    []string `json:"features"`
	Storage     string   `json:"storage"`
	LLMProvider string   `json:"llm_provider"`
}

// Service reports service health. DB may be nil when running on memory repositories.
type Service struct {
	Version     string
	LLMProvider string
	DB          *sql.DB
}

// NewService constructs a new health service.
func NewService(version, llmProvider string, database *sql.DB) *Service {
	return &Service{Version: version, LLMProvider: llmProvider, DB: database}
}

// Status reports "ok", or "degraded" when the database does not answer a ping.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		Status:      "ok",
		Version:     s.Version,
		Features:    append([]string(nil), Features...),
		Storage:     "memory",
		LLMProvider: s.LLMProvider,
	}
	if s.DB != nil {
		st.Storage = "postgres"
		if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
			st.Status = "degraded"
		}
	}
	return st
}
