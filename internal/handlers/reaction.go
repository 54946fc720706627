// ===============================
// internal/handlers/reaction.go - Like/Dislike Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	service *services.ReactionService
}

func NewReactionHandler(service *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// target resolves kind and id from the route params; the service
// validates the kind.
func target(c *gin.Context) (models.TargetKind, string) {
	return models.TargetKind(c.Param("targetKind")), c.Param("targetId")
}

// Toggle applies one press of the like or dislike button. The desired
// type comes from the request body.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var body struct {
		Type models.ReactionType `json:"type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	kind, targetID := target(c)
	result, err := h.service.Toggle(c.Request.Context(), userID, kind, targetID, body.Type)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, result, "Reaction toggled successfully")
}

// Status reports the caller's current reaction on the target.
func (h *ReactionHandler) Status(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	kind, targetID := target(c)
	status, err := h.service.Status(c.Request.Context(), userID, kind, targetID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, status, "Reaction status fetched successfully")
}

// Counts returns like/dislike totals for the target.
func (h *ReactionHandler) Counts(c *gin.Context) {
	kind, targetID := target(c)
	counts, err := h.service.Counts(c.Request.Context(), kind, targetID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, counts, "Reaction counts fetched successfully")
}
