package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/accounts"
	"ats-backend/internal/analyses"
	"ats-backend/internal/llm"
	"ats-backend/internal/llm/cohere"
	"ats-backend/internal/optimize"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/templates"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var accountRepo accounts.Repo
	if sqlDB != nil {
		accountRepo = &accounts.PGRepo{DB: sqlDB}
	} else {
		accountRepo = accounts.NewMemoryRepo()
	}

	var llmClient llm.Client
	if cfg.CohereAPIKey != "" {
		client, err := cohere.NewClient(cfg.CohereAPIKey, cfg.CohereModel, cfg.CohereTimeout)
		if err != nil {
			log.Printf("cohere client unavailable: %v", err)
			llmClient = llm.PlaceholderClient{}
		} else {
			llmClient = client
		}
	} else {
		log.Printf("COHERE_API_KEY not set, model calls will fail")
		llmClient = llm.PlaceholderClient{}
	}

	sessions := analyses.NewSessionStore()
	accountSvc := accounts.NewService(accountRepo)
	accountHandler := accounts.NewHandler(accountSvc, sessions)
	analysisSvc := &analyses.Service{
		LLM:         llmClient,
		Sessions:    sessions,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	}
	analysisHandler := analyses.NewHandler(analysisSvc)
	optimizeSvc := &optimize.Service{
		LLM:         llmClient,
		Sessions:    sessions,
		MaxTokens:   cfg.LLMMaxTokensAdvanced,
		Temperature: cfg.LLMTemperature,
	}
	optimizeHandler := optimize.NewHandler(optimizeSvc)
	templateHandler := templates.NewHandler()
	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())
	accountHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)
	optimizeHandler.RegisterRoutes(api)
	templateHandler.RegisterRoutes(api)
	if cfg.Env == "dev" {
		accountHandler.RegisterDevRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
