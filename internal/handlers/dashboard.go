// ===============================
// internal/handlers/dashboard.go - Channel Dashboard Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats serves the caller's channel aggregates.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos lists the caller's videos with reaction counts, drafts
// included.
func (h *DashboardHandler) Videos(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page := pageParams(c, 10, 50)
	videos, total, err := h.service.ChannelVideos(c.Request.Context(), userID, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(videos, total, page), "Channel videos fetched successfully")
}

// ChannelData bundles stats with the first page of videos.
func (h *DashboardHandler) ChannelData(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page := pageParams(c, 10, 50)
	data, err := h.service.ChannelData(c.Request.Context(), userID, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, data, "Channel data fetched successfully")
}
