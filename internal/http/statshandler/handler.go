package statshandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"presencehub/internal/hub"
	"presencehub/internal/rooms"
)

type Handler struct {
	hub *hub.Hub
	agg *rooms.Aggregator
}

func New(h *hub.Hub, agg *rooms.Aggregator) *Handler {
	return &Handler{hub: h, agg: agg}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.healthz)
	r.GET("/stats", h.stats)
}

// @Summary		Liveness probe
// @Tags			Operations
// @Success		200	{object}	statshandler.HealthResponse
// @Router			/healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// @Summary		Live membership counts
// @Description	Current room and connection totals plus the count snapshot for the default route.
// @Tags			Operations
// @Success		200	{object}	statshandler.StatsResponse
// @Router			/stats [get]
func (h *Handler) stats(c *gin.Context) {
	roomCount, memberCount := h.hub.Stats()
	c.JSON(http.StatusOK, StatsResponse{
		Rooms:   roomCount,
		Members: memberCount,
		Counts:  h.agg.Snapshot(rooms.DefaultRoute),
	})
}
