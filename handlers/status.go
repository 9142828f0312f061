package handlers

import (
	"net/http"

	"ingcap/models"
	"ingcap/services/status"
	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusHandler records client status checks.
type StatusHandler struct {
	Service status.StatusService
}

func NewStatusHandler(svc status.StatusService) *StatusHandler {
	return &StatusHandler{Service: svc}
}

func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var input models.StatusCheckCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	check, err := h.Service.Create(c.Request.Context(), input.ClientName)
	if err != nil {
		getLogger(c).Error("CreateStatusCheck: failed to store status check", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store status check", err.Error())
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) GetStatusChecks(c *gin.Context) {
	checks, err := h.Service.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("GetStatusChecks: failed to fetch status checks", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch status checks", err.Error())
		return
	}
	c.JSON(http.StatusOK, checks)
}

// Root answers the API root.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}
