package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/middleware"
)

// Register mounts the pricing endpoints on api. At most maxConcurrentRuns
// imports run at once.
func (h *PricingHandler) Register(api *gin.RouterGroup, maxConcurrentRuns int64) {
	api.POST("/import/prices", middleware.ConcurrencyLimit(maxConcurrentRuns), h.ImportPrices)
	api.GET("/import/runs", h.ListRuns)
	api.GET("/export/prices.csv", h.ExportPrices)
}

// RegisterDocs serves the Swagger UI under /docs
func RegisterDocs(router gin.IRoutes) {
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
