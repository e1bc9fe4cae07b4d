package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-coach/internal/coach"
	"career-coach/internal/interviews"
	"career-coach/internal/learningpaths"
	"career-coach/internal/llm"
	"career-coach/internal/llm/gemini"
	"career-coach/internal/llm/openai"
	"career-coach/internal/profiles"
	"career-coach/internal/resumes"
	"career-coach/internal/services/health"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/server"
	"career-coach/internal/shared/server/middleware"
	"career-coach/internal/shared/storage/db"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "0.1.0"

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	LLM               llm.Client
	Generator         *coach.Generator
	ProfilesRepo      profiles.Repo
	InterviewsRepo    interviews.Repo
	LearningPathsRepo learningpaths.Repo
	ProfilesService   *profiles.Service
	InterviewsService *interviews.Service
	PathsService      *learningpaths.Service
}

// Build wires configuration, storage, the LLM gateway and HTTP routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		LLM:       client,
		Generator: coach.NewGenerator(client, cfg.LLMModel, cfg.LLMTimeout),
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	router, err := server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Health:        health.NewService(Version, cfg.LLMProvider, sqlDB),
		Profiles:      profiles.NewHandler(app.ProfilesService),
		Interviews:    interviews.NewHandler(app.InterviewsService),
		LearningPaths: learningpaths.NewHandler(app.PathsService),
		Resumes:       resumes.NewHandler(),
		Limiter:       middleware.NewRateLimiter(nil),
	})
	if err != nil {
		return nil, err
	}
	app.Router = router
	return app, nil
}

// BuildLLM returns the configured gateway, or the placeholder client when the
// provider is "placeholder" or its key is missing outside production.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" && config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: OPENAI_API_KEY empty; generation requests will fail with 502")
			return llm.PlaceholderClient{}, nil
		}
		// The pipeline applies its own per-call timeout; the HTTP client gets headroom.
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout+5*time.Second)
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" && config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; generation requests will fail with 502")
			return llm.PlaceholderClient{}, nil
		}
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	var (
		profileRepo  profiles.Repo
		feedbackRepo profiles.FeedbackRepo
		sessionRepo  interviews.Repo
		pathRepo     learningpaths.Repo
	)
	if app.DB != nil {
		pg := &profiles.PGRepo{DB: app.DB}
		profileRepo = pg
		feedbackRepo = pg
		sessionRepo = &interviews.PGRepo{DB: app.DB}
		pathRepo = &learningpaths.PGRepo{DB: app.DB}
	} else {
		mem := profiles.NewMemoryRepo()
		profileRepo = mem
		feedbackRepo = mem
		sessionRepo = interviews.NewMemoryRepo()
		pathRepo = learningpaths.NewMemoryRepo()
	}

	cached, err := profiles.NewCachedRepo(profileRepo, app.Config.ProfileCacheSize)
	if err != nil {
		return fmt.Errorf("profile cache: %w", err)
	}

	app.ProfilesRepo = cached
	app.InterviewsRepo = sessionRepo
	app.LearningPathsRepo = pathRepo
	app.ProfilesService = &profiles.Service{
		Repo:     cached,
		Feedback: feedbackRepo,
		Analyzer: app.Generator,
		Sessions: sessionRepo,
		Paths:    pathRepo,
	}
	app.InterviewsService = &interviews.Service{
		Repo:      sessionRepo,
		Profiles:  app.ProfilesService,
		Generator: app.Generator,
	}
	app.PathsService = &learningpaths.Service{
		Repo:      pathRepo,
		Profiles:  app.ProfilesService,
		Generator: app.Generator,
	}
	return nil
}
