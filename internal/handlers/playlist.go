// ===============================
// internal/handlers/playlist.go - Playlist Endpoints
// ===============================

package handlers

import (
	"net/http"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	service *services.PlaylistService
}

func NewPlaylistHandler(service *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	playlist, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := h.service.AddVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := h.service.RemoveVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Video removed from playlist successfully")
}

// ListByUser serves a user's playlists; private ones only when the
// viewer is the owner.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	page := pageParams(c, 12, 50)

	playlists, total, err := h.service.ListByOwner(c.Request.Context(), c.Param("userId"), currentUserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(playlists, total, page), "Playlists fetched successfully")
}

// ListMine serves the caller's own playlists including private ones.
func (h *PlaylistHandler) ListMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page := pageParams(c, 12, 50)
	playlists, total, err := h.service.ListByOwner(c.Request.Context(), userID, userID, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(playlists, total, page), "Playlists fetched successfully")
}

func (h *PlaylistHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("playlistId"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, detail, "Playlist fetched successfully")
}

func (h *PlaylistHandler) Videos(c *gin.Context) {
	page := pageParams(c, 12, 50)

	videos, total, err := h.service.Videos(c.Request.Context(), c.Param("playlistId"), currentUserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(videos, total, page), "Playlist videos fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	playlist, err := h.service.Update(c.Request.Context(), c.Param("playlistId"), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("playlistId"), userID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Playlist deleted successfully")
}
