package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redline/internal/handler"
	"redline/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	analysisH *handler.AnalysisHandler,
	compareH *handler.CompareHandler,
	healthH *handler.HealthHandler,
	logger *zap.Logger,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Create)
	analyses.GET("/:id", analysisH.Get)
	analyses.GET("/:id/revised.docx", analysisH.DownloadRevised)
	analyses.GET("/:id/highlighted.docx", analysisH.DownloadHighlighted)
	analyses.GET("/:id/bundle.zip", analysisH.DownloadBundle)
	analyses.GET("/:id/report.docx", analysisH.DownloadReport)
	analyses.GET("/:id/findings.xlsx", analysisH.DownloadFindingsXlsx)
	analyses.GET("/:id/structure.xlsx", analysisH.DownloadStructureXlsx)

	v1.POST("/comparisons", compareH.Create)

	return r
}
