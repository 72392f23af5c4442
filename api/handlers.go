package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"contactledger/ledger"
	"contactledger/models"
)

// Handlers carries the store opened in main into the request handlers.
type Handlers struct {
	Store *ledger.Store
}

func (h *Handlers) lookupContact(c *gin.Context) {
	companyID := c.Param("companyId")
	c.JSON(http.StatusOK, h.Store.Lookup(companyID))
}

func (h *Handlers) registerContact(c *gin.Context) {
	var req models.RegisterContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyId, companyName and contactorName are required."})
		return
	}

	status, err := h.Store.Register(req.CompanyID, req.CompanyName, req.ContactorName)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		// Storage detail stays in the log, not in the response.
		log.Printf("[api] register %q failed: %v", req.CompanyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record contact."})
		return
	}

	c.JSON(http.StatusOK, status)
}
