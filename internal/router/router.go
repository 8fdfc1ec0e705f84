package router

import (
	"time"

	"importradar/internal/config"
	"importradar/internal/handler"
	"importradar/internal/infra"
	"importradar/internal/middleware"
	"importradar/internal/repository"
	"importradar/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, fx *infra.ExchangeClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	marketRepo := repository.NewMarketDataRepository(db)
	simulationRepo := repository.NewSimulationRepository(db)
	decisionRepo := repository.NewDecisionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, rdb)
	marketSvc := service.NewMarketDataService(marketRepo, productRepo, rdb)
	simulationSvc := service.NewSimulationService(productRepo, simulationRepo, fx, rdb, cfg.MarginMinPct)
	scoringSvc := service.NewScoringService(productRepo, marketRepo, simulationRepo, rdb, cfg.MarginMinPct)
	triageSvc := service.NewTriageService(productRepo, marketRepo, simulationRepo, decisionRepo, cfg.MarginMinPct)
	decisionSvc := service.NewDecisionService(productRepo, decisionRepo)
	evaluationSvc := service.NewEvaluationService(productRepo, marketRepo, simulationRepo, decisionRepo, cfg.MarginMinPct)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, triageSvc)
	marketH := handler.NewMarketDataHandler(marketSvc)
	simulationsH := handler.NewSimulationsHandler(simulationSvc)
	scoresH := handler.NewScoresHandler(scoringSvc)
	decisionsH := handler.NewDecisionsHandler(decisionSvc)
	evaluationH := handler.NewEvaluationHandler(evaluationSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, fx))

	products := r.Group("/products")
	{
		products.POST("", productsH.Create)
		products.GET("", productsH.List)
		products.GET("/triage", productsH.Triage)
		products.GET("/scores/ranking", scoresH.Ranking)

		products.GET("/:id", productsH.GetByID)
		products.PUT("/:id", productsH.Update)
		products.DELETE("/:id", productsH.Delete)

		products.GET("/:id/market-data", marketH.Get)
		products.POST("/:id/market-data", marketH.Upsert)

		products.POST("/:id/simulate", simulationsH.Simulate)
		products.GET("/:id/simulations/last", simulationsH.Last)

		products.GET("/:id/score", scoresH.Score)

		products.GET("/:id/evaluation", evaluationH.Evaluate)

		products.POST("/:id/decisions", decisionsH.Create)
		products.GET("/:id/decisions", decisionsH.List)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
