package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Run the monitor now
// @Description  Classifies every grid, then dispatches and paints like a scheduled tick
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  writeoff_monitor.RunSummary
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/monitor/run [post]
// @Security     BearerAuth
func (h *Handler) runMonitor(c *gin.Context) {
	sum, err := h.services.Monitor.Run(c.Request.Context())
	if h.log != nil {
		id, _ := operatorID(c)
		h.log.Infow("manual_run", "operator_id", id, "run_id", sum.ID)
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRunMonitor, "monitor_run_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Preview classification
// @Description  Classifies the current grids at 'at' (RFC3339, shifted wall-clock) without dispatching or painting
// @Tags         monitor
// @Produce      json
// @Param        at  query  string  false  "Instant to classify at; defaults to now"  example(2025-08-06T12:00:00Z)
// @Success      200  {object}  map[string]interface{}  "now, weekday, occurrences, payload"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/monitor/preview [get]
// @Security     BearerAuth
func (h *Handler) previewMonitor(c *gin.Context) {
	var at time.Time
	if qs := c.Query("at"); qs != "" {
		t, err := time.Parse(time.RFC3339, qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' time; use RFC3339"})
			return
		}
		// wall-clock fields are what the engine reads
		at = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	}
	res, err := h.services.Monitor.Preview(c.Request.Context(), at)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPreviewMonitor, "monitor_preview_failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
