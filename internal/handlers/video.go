// ===============================
// internal/handlers/video.go - Video Catalog Endpoints
// ===============================

package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/models"
	"videohub/internal/storage"

	"github.com/gin-gonic/gin"
)

// videoService is the slice of the video service the handler uses.
type videoService interface {
	NewVideoID() string
	MediaFolder(ownerID, videoID string) string
	Publish(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoDetail, error)
	Owner(ctx context.Context, videoID string) (string, error)
	UpdateInfo(ctx context.Context, videoID, actorID string, req *models.UpdateVideoRequest, newThumbnailURL string) (*models.Video, string, error)
	Delete(ctx context.Context, videoID, actorID string) error
	TogglePublish(ctx context.Context, videoID, actorID string) (bool, error)
	List(ctx context.Context, params models.VideoListParams, page models.PageParams) ([]models.VideoSummary, int, error)
	RecordView(ctx context.Context, videoID, viewerID string) error
	Recommendations(ctx context.Context, videoID, viewerID string) ([]models.VideoSummary, error)
}

type VideoHandler struct {
	service videoService
	media   mediaStore
}

func NewVideoHandler(service videoService, media mediaStore) *VideoHandler {
	return &VideoHandler{service: service, media: media}
}

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// Publish handles multipart upload of a video plus thumbnail. Both
// files land under one folder keyed by owner and video id so teardown
// can delete the prefix.
func (h *VideoHandler) Publish(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid form data"))
		return
	}
	if validationErrors := req.ValidateForCreation(); len(validationErrors) > 0 {
		fail(c, apperr.InvalidArgument(strings.Join(validationErrors, "; ")))
		return
	}

	videoHeader, err := c.FormFile("videoFile")
	if err != nil {
		fail(c, apperr.InvalidArgument("video file is required"))
		return
	}
	if videoHeader.Size > models.MaxVideoFileSize {
		fail(c, apperr.InvalidArgument("video file is too large"))
		return
	}

	thumbnailHeader, err := c.FormFile("thumbnail")
	if err != nil {
		fail(c, apperr.InvalidArgument("thumbnail image is required"))
		return
	}

	videoExt := strings.ToLower(filepath.Ext(videoHeader.Filename))
	videoContentType, ok := videoContentTypes[videoExt]
	if !ok {
		fail(c, apperr.InvalidArgument("unsupported video format"))
		return
	}

	videoID := h.service.NewVideoID()
	folder := h.service.MediaFolder(userID, videoID)

	videoURL, duration, err := h.uploadVideoFile(c, videoHeader, folder, videoExt, videoContentType)
	if err != nil {
		fail(c, err)
		return
	}

	thumbnailURL, err := uploadImage(c, h.media, thumbnailHeader, folder, models.MaxThumbnailSize)
	if err != nil {
		// roll back the stored video file before reporting
		_ = h.media.DeletePrefix(c.Request.Context(), folder)
		fail(c, err)
		return
	}

	video := &models.Video{
		ID:           videoID,
		OwnerID:      userID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
	}

	created, err := h.service.Publish(c.Request.Context(), video)
	if err != nil {
		_ = h.media.DeletePrefix(c.Request.Context(), folder)
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, created, "Video published successfully")
}

func (h *VideoHandler) uploadVideoFile(c *gin.Context, header *multipart.FileHeader, folder, ext, contentType string) (string, float64, error) {
	file, err := header.Open()
	if err != nil {
		return "", 0, apperr.Internal("failed to read uploaded video", err)
	}
	defer file.Close()

	duration := storage.ProbeMP4Duration(file, header.Size)

	if _, err := file.Seek(0, 0); err != nil {
		return "", 0, apperr.Internal("failed to rewind uploaded video", err)
	}

	key := fmt.Sprintf("%s/video%s", folder, ext)
	if err := h.media.Upload(c.Request.Context(), key, file, contentType); err != nil {
		return "", 0, apperr.Internal("failed to store video", err)
	}

	return h.media.PublicURL(key), duration, nil
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID := c.Param("videoId")

	detail, err := h.service.GetByID(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, detail, "Video fetched successfully")
}

// UpdateInfo accepts multipart or form fields; thumbnail is optional
// and replaces the old file when present.
func (h *VideoHandler) UpdateInfo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var req models.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid form data"))
		return
	}

	newThumbnailURL := ""
	if thumbnailHeader, err := c.FormFile("thumbnail"); err == nil {
		// ownership gates the upload so a rejected request cannot
		// leave an orphaned file in the owner's folder
		ownerID, err := h.service.Owner(c.Request.Context(), videoID)
		if err != nil {
			fail(c, err)
			return
		}
		if ownerID != userID {
			fail(c, apperr.Forbidden("only the owner can update this video"))
			return
		}
		folder := h.service.MediaFolder(ownerID, videoID)
		newThumbnailURL, err = uploadImage(c, h.media, thumbnailHeader, folder, models.MaxThumbnailSize)
		if err != nil {
			fail(c, err)
			return
		}
	}

	video, oldThumbnail, err := h.service.UpdateInfo(c.Request.Context(), videoID, userID, &req, newThumbnailURL)
	if err != nil {
		fail(c, err)
		return
	}

	if oldThumbnail != "" && oldThumbnail != video.ThumbnailURL {
		if key, ok := h.media.KeyFromURL(oldThumbnail); ok {
			_ = h.media.Delete(c.Request.Context(), key)
		}
	}

	respond(c, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("videoId"), userID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	isPublished, err := h.service.TogglePublish(c.Request.Context(), c.Param("videoId"), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"isPublished": isPublished}, "Publish status toggled successfully")
}

// List serves the public feed with search, sort and pagination.
func (h *VideoHandler) List(c *gin.Context) {
	page := pageParams(c, 12, 50)
	params := models.VideoListParams{
		Query:     c.Query("query"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortType", "desc"),
		OwnerID:   c.Query("userId"),
	}

	videos, total, err := h.service.List(c.Request.Context(), params, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(videos, total, page), "Videos fetched successfully")
}

// RecordView bumps the counter and appends watch history for
// authenticated viewers.
func (h *VideoHandler) RecordView(c *gin.Context) {
	if err := h.service.RecordView(c.Request.Context(), c.Param("videoId"), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "View recorded successfully")
}

func (h *VideoHandler) Recommendations(c *gin.Context) {
	videos, err := h.service.Recommendations(c.Request.Context(), c.Param("videoId"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"videos": videos}, "Recommendations fetched successfully")
}
