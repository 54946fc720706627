// ===============================
// internal/handlers/comment.go - Comment Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	comment, err := h.service.Add(c.Request.Context(), c.Param("videoId"), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	comment, err := h.service.Update(c.Request.Context(), c.Param("commentId"), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("commentId"), userID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Comment deleted successfully")
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	page := pageParams(c, 10, 50)

	comments, total, err := h.service.ListByVideo(c.Request.Context(), c.Param("videoId"), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(comments, total, page), "Comments fetched successfully")
}
