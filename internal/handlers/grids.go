package handlers

import (
	"net/http"
	"strconv"

	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// PutCellRequest is the payload of PUT /api/v1/grids/{unit}/cells.
type PutCellRequest struct {
	// 1-based row, row 1 is the header
	Row int `json:"row" binding:"required" example:"2"`
	// 1-based column, A..O
	Column int `json:"column" binding:"required" example:"6"`
	// Allowed: "", string, number, bool, datetime
	Kind  string `json:"kind" example:"datetime"`
	Value string `json:"value" example:"12:05:00"`
}

// rowView is the JSON shape of a raw grid row.
type rowView struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Due     any    `json:"due"`
	Checked any    `json:"checked"`
}

// @Summary      Weekday rows of a grid
// @Description  Raw due/checked cells of one weekday (1=Monday .. 7=Sunday), unvalidated
// @Tags         grids
// @Produce      json
// @Param        unit     path  string  true  "Unit (grid) name"
// @Param        weekday  path  int     true  "Weekday 1..7"
// @Success      200  {object}  map[string]interface{}  "count, rows"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/grids/{unit}/weekday/{weekday} [get]
// @Security     BearerAuth
func (h *Handler) getWeekdayRows(c *gin.Context) {
	unit := c.Param("unit")
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be an integer 1..7"})
		return
	}
	rows, err := h.services.Grids.WeekdayRows(c.Request.Context(), unit, weekday)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.logAndJSONError(c, code, errLoadGrid, "grid_rows_failed", err, "unit", unit, "weekday", weekday)
			return
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	out := make([]rowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowView{Row: r.Row, Name: r.Name, Due: r.Due, Checked: r.Checked})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "rows": out})
}

// @Summary      Write a grid cell
// @Tags         grids
// @Accept       json
// @Produce      json
// @Param        unit  path  string          true  "Unit (grid) name"
// @Param        body  body  PutCellRequest  true  "Cell"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/grids/{unit}/cells [put]
// @Security     BearerAuth
func (h *Handler) putCell(c *gin.Context) {
	var req PutCellRequest
	if !h.bindJSON(c, &req) {
		return
	}
	unit := c.Param("unit")
	params := service.CellParams{
		Row:    req.Row,
		Column: req.Column,
		Kind:   models.CellKind(req.Kind),
		Value:  req.Value,
	}
	if err := h.services.Grids.PutCell(c.Request.Context(), unit, params); err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.logAndJSONError(c, code, errWriteCell, "grid_put_cell_failed", err, "unit", unit)
			return
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
