package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, jobHandler *JobHandler) {
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	apiGroup.POST("/download", jobHandler.HandleDownload)
	apiGroup.GET("/status/:id", jobHandler.HandleStatus)
	apiGroup.GET("/config", jobHandler.HandleConfig)
}
