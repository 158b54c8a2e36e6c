package handlers

import (
	"errors"
	"net/http"

	"writeoff_monitor/internal/repository"
	"writeoff_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errListUnits       = "failed to load units"
	errCreateUnit      = "failed to create unit"
	errLoadGrid        = "failed to load grid"
	errWriteCell       = "failed to write cell"
	errRunMonitor      = "failed to run monitor"
	errPreviewMonitor  = "failed to classify grids"
	errListRuns        = "failed to load runs"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusFor maps service errors onto HTTP codes; anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case service.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownUnit):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnitExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
