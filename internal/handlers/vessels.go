package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/service"
	"brewery_dashboard/internal/sources"
)

const (
	statusOK = "ok"

	errNoSnapshot      = "no snapshot available yet; first refresh pending"
	errUnknownVessel   = "unknown vessel"
	errLoadSnapshot    = "failed to load snapshot"
	errSaveAdjustment  = "failed to save adjustment"
	errInvalidBodyPref = "invalid body: "
	errRefreshBusy     = "a manual refresh is already running"
	errRefreshThrottle = "manual refresh requested too soon; try again shortly"
	errRefreshTrigger  = "sheet refresh trigger failed"
	errRefreshNoData   = "spreadsheet returned no data"
	errRefreshFailed   = "refresh failed"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// snapshotError maps the read-side service errors; ok is false for anything else.
func snapshotError(err error) (code int, msg string, ok bool) {
	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		return http.StatusServiceUnavailable, errNoSnapshot, true
	case errors.Is(err, service.ErrUnknownVessel):
		return http.StatusNotFound, errUnknownVessel, true
	case errors.Is(err, service.ErrInvalidAdjustment):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// Request DTO for adjustments. Omitted fields are zero.
type adjustmentRequest struct {
	DexCount    int     `json:"dex_count" binding:"min=0,max=100"`
	FruitVolume float64 `json:"fruit_volume" binding:"min=0"`
}

// AdjustmentRequest is an exported model for Swagger docs of the adjustment payload.
type AdjustmentRequest struct {
	// Dextrose units added for priming
	DexCount int `json:"dex_count" example:"1"`
	// Fruit added, in liters
	FruitVolume float64 `json:"fruit_volume" example:"50"`
}

// vesselDetail is one vessel plus what a tile needs to render it.
type vesselDetail struct {
	Vessel              models.VesselState `json:"vessel"`
	BatchLabel          string             `json:"batch_label"`
	Chart               models.ChartSeries `json:"chart"`
	ShowsBriteMetrics   bool               `json:"shows_brite_metrics"`
	ShowsFermentMetrics bool               `json:"shows_ferment_metrics"`
}

func newVesselDetail(v models.VesselState) vesselDetail {
	return vesselDetail{
		Vessel:              v,
		BatchLabel:          v.BatchLabel(),
		Chart:               v.ChartSeries(),
		ShowsBriteMetrics:   v.Stage.ShowsBriteMetrics(),
		ShowsFermentMetrics: v.Stage.ShowsFermentMetrics(),
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Latest snapshot
// @Description  Every configured vessel in display order.
// @Tags         vessels
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/vessels [get]
func (h *Handler) listVessels(c *gin.Context) {
	snap, err := h.services.Dashboard.Snapshot(c.Request.Context())
	if err != nil {
		if code, msg, ok := snapshotError(err); ok {
			c.JSON(code, gin.H{"error": msg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSnapshot, "snapshot_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      One vessel
// @Tags         vessels
// @Produce      json
// @Param        id   path      string  true  "Vessel id, e.g. FV1"
// @Success      200  {object}  map[string]interface{}  "vessel, batch_label, chart"
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/vessels/{id} [get]
func (h *Handler) getVessel(c *gin.Context) {
	id := c.Param("id")
	v, err := h.services.Dashboard.Vessel(c.Request.Context(), id)
	if err != nil {
		if code, msg, ok := snapshotError(err); ok {
			c.JSON(code, gin.H{"error": msg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSnapshot, "vessel_get_failed", err, "vessel", id)
		return
	}
	c.JSON(http.StatusOK, newVesselDetail(v))
}

// @Summary      Set adjustment
// @Description  Stores hypothetical dextrose/fruit additions and recomputes the vessel.
// @Tags         vessels
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Vessel id"
// @Param        body  body      AdjustmentRequest  true  "Adjustment payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/vessels/{id}/adjustment [put]
func (h *Handler) setAdjustment(c *gin.Context) {
	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := c.Param("id")
	v, err := h.services.Dashboard.SetAdjustment(c.Request.Context(), id, models.Adjustment{
		DexCount:    req.DexCount,
		FruitVolume: req.FruitVolume,
	})
	h.respondAdjusted(c, id, v, err)
}

// @Summary      Clear adjustment
// @Tags         vessels
// @Produce      json
// @Param        id   path      string  true  "Vessel id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/vessels/{id}/adjustment [delete]
func (h *Handler) clearAdjustment(c *gin.Context) {
	id := c.Param("id")
	v, err := h.services.Dashboard.ClearAdjustment(c.Request.Context(), id)
	h.respondAdjusted(c, id, v, err)
}

func (h *Handler) respondAdjusted(c *gin.Context, id string, v models.VesselState, err error) {
	if err != nil {
		if code, msg, ok := snapshotError(err); ok {
			c.JSON(code, gin.H{"error": msg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveAdjustment, "adjustment_save_failed", err, "vessel", id)
		return
	}
	c.JSON(http.StatusOK, newVesselDetail(v))
}

// @Summary      Manual refresh
// @Description  Asks the sheet to pull new responses, then rebuilds the snapshot.
// @Tags         refresh
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/refresh [post]
func (h *Handler) manualRefresh(c *gin.Context) {
	if !h.refreshLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": errRefreshThrottle})
		return
	}
	snap, err := h.services.Refresher.ManualRefresh(c.Request.Context())
	if err != nil {
		var (
			trigErr *sources.RefreshTriggerError
			noData  *engine.NoDataError
		)
		switch {
		case errors.Is(err, service.ErrRefreshInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": errRefreshBusy})
		case errors.As(err, &trigErr):
			h.logAndJSONError(c, http.StatusBadGateway, errRefreshTrigger, "refresh_trigger_failed", err, "status", trigErr.Status)
		case errors.As(err, &noData):
			h.logAndJSONError(c, http.StatusBadGateway, errRefreshNoData, "refresh_no_data", err)
		default:
			h.logAndJSONError(c, http.StatusBadGateway, errRefreshFailed, "refresh_failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, snap)
}
