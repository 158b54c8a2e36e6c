package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateUnitRequest is the payload of POST /api/v1/units.
type CreateUnitRequest struct {
	// Unit name, must match the grid name exactly
	Name string `json:"name" binding:"required" example:"Kitchen"`
}

// @Summary      List units
// @Tags         units
// @Produce      json
// @Success      200  {array}   writeoff_monitor.Unit
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/units [get]
// @Security     BearerAuth
func (h *Handler) listUnits(c *gin.Context) {
	units, err := h.services.Grids.Units(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListUnits, "units_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, units)
}

// @Summary      Create unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        body  body      CreateUnitRequest  true  "Unit"
// @Success      201   {object}  writeoff_monitor.Unit
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/units [post]
// @Security     BearerAuth
func (h *Handler) createUnit(c *gin.Context) {
	var req CreateUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}
	unit, err := h.services.Grids.CreateUnit(c.Request.Context(), req.Name)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.logAndJSONError(c, code, errCreateUnit, "unit_create_failed", err, "name", req.Name)
			return
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, unit)
}
