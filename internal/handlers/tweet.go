// ===============================
// internal/handlers/tweet.go - Community Post Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	service *services.TweetService
}

func NewTweetHandler(service *services.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

func (h *TweetHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.TweetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	tweet, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, tweet, "Post created successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	page := pageParams(c, 4, 50)

	tweets, total, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(tweets, total, page), "Posts fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.TweetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	tweet, err := h.service.Update(c.Request.Context(), c.Param("tweetId"), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, tweet, "Post updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("tweetId"), userID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Post deleted successfully")
}
