package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contactledger/ledger"
)

func SetupRoutes(r *gin.Engine, store *ledger.Store) {
	h := &Handlers{Store: store}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", healthCheck)
		apiGroup.GET("/contacts/:companyId", h.lookupContact)
		apiGroup.POST("/contacts", h.registerContact)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
