package router

import (
	"github.com/gin-gonic/gin"

	"receiptflow/internal/config"
	"receiptflow/internal/handler"
	"receiptflow/internal/middleware"
)

// SetupExtraction configures the Gin engine for the extraction service.
func SetupExtraction(
	cfg *config.Config,
	pageH *handler.PageHandler,
	statsH *handler.StatsHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := newEngine(cfg)

	// The flat /ocr and / routes are the contract the upstream orchestrator
	// calls; everything added later lives under /api/v1.
	r.GET("/", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.POST("/ocr", pageH.ProcessPage)

	v1 := r.Group("/api/v1")
	v1.GET("/stats", statsH.GetStats)
	v1.GET("/report/pages.xlsx", reportH.ExportPages)
	v1.GET("/report/pages.csv", reportH.ExportPagesCSV)

	return r
}

// SetupClassifier configures the Gin engine for the classification backfill service.
func SetupClassifier(
	cfg *config.Config,
	backfillH *handler.BackfillHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := newEngine(cfg)

	r.GET("/", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.POST("/process", backfillH.Process)

	return r
}

func newEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	return r
}
