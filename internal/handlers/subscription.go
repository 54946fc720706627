// ===============================
// internal/handlers/subscription.go - Subscription Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service *services.SubscriptionService
}

func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, result, "Subscription toggled successfully")
}

func (h *SubscriptionHandler) IsSubscribed(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subscribed, err := h.service.IsSubscribed(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, "Subscription status fetched successfully")
}

// Subscribers lists a channel's subscribers with reciprocity flags for
// the viewer.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	page := pageParams(c, 10, 50)

	items, total, err := h.service.ChannelSubscribers(c.Request.Context(),
		c.Param("channelId"), currentUserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(items, total, page), "Subscribers fetched successfully")
}

// SubscribedChannels lists the channels a user follows. Supports a
// query param for name search.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	page := pageParams(c, 10, 50)

	items, total, err := h.service.SubscribedChannels(c.Request.Context(),
		c.Param("userId"), currentUserID(c), c.Query("query"), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(items, total, page), "Subscribed channels fetched successfully")
}
