package server

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "stackadvisor-backend/internal/auth"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/catalog/seed"
	"stackadvisor-backend/internal/integrations"
	"stackadvisor-backend/internal/matcher"
	"stackadvisor-backend/internal/narrative"
	narrativeopenai "stackadvisor-backend/internal/narrative/openai"
	"stackadvisor-backend/internal/overlap"
	"stackadvisor-backend/internal/recommend"
	"stackadvisor-backend/internal/recommend/engine"
	"stackadvisor-backend/internal/services/health"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/server/respond"
	"stackadvisor-backend/internal/shared/storage/db"
	"stackadvisor-backend/internal/users"
)

// Request groups for rate limiting. Building recommendations is the only
// expensive endpoint.
const (
	groupRecommend = "RECOMMEND"
	groupDefault   = "DEFAULT"
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
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				groupRecommend: {Rate: 0.5, Burst: 5},
				groupDefault:   {Rate: 10, Burst: 30},
			},
			DefaultGroup: groupDefault,
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == "POST" && strings.HasSuffix(c.FullPath(), "/recommendations") {
					return groupRecommend
				}
				return groupDefault
			},
		}),
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

	var (
		catalogRepo     catalog.Repo
		integrationRepo integrations.Repo
		overlapRepo     overlap.Repo
		userRepo        users.Repo
	)
	if sqlDB != nil {
		catalogRepo = catalog.NewCachedRepo(&catalog.PGRepo{DB: sqlDB}, cfg.CatalogCacheTTL)
		integrationRepo = &integrations.PGRepo{DB: sqlDB}
		overlapRepo = &overlap.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		data, err := seed.Load()
		if err != nil {
			// The embedded seed is validated at build time; failing to parse
			// it means the binary itself is broken.
			log.Fatalf("load embedded catalog seed: %v", err)
		}
		catalogRepo = catalog.NewMemoryRepo(data.Tools, data.Bundles)
		integrationRepo = integrations.NewMemoryRepo(data.Integrations, data.Recipes)
		overlapRepo = overlap.NewMemoryRepo(data.Redundancies, data.Replacements)
		userRepo = users.NewMemoryRepo()
	}

	integrationScorer := engine.NewIntegrationScorer(integrationRepo)
	pipeline := engine.NewPipeline(engine.NewScorer(integrationScorer))
	builder := engine.NewBuilder(integrationScorer, engine.NewRedundancyResolver(overlapRepo), catalogRepo)

	var generator narrative.Generator
	if cfg.NarrativeProvider == "openai" {
		client, err := narrativeopenai.NewClient(cfg.NarrativeAPIKey, cfg.NarrativeModel, cfg.NarrativeBaseURL)
		if err != nil {
			log.Printf("narrative provider unavailable, using template: %v", err)
		} else {
			generator = client
		}
	}

	userSvc := users.NewService(userRepo)
	recommendSvc := recommend.NewService(catalogRepo, matcher.NewService(catalogRepo), pipeline, builder, generator, cfg.EngineVersion)
	healthSvc := health.NewService(sqlDB)
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, userSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, 200, healthSvc.Status(c.Request.Context()))
	})
	googleAuthSvc.RegisterRoutes(api)
	users.NewHandler(userSvc).RegisterRoutes(api)
	catalog.NewHandler(catalogRepo).RegisterRoutes(api)
	recommend.NewHandler(recommendSvc).RegisterRoutes(api)

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
