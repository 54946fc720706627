package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videohub/internal/apperr"
	"videohub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoService struct {
	ownerID         string
	updateCalls     int
	updateThumbnail string
}

func (f *fakeVideoService) NewVideoID() string { return uuid.NewString() }

func (f *fakeVideoService) MediaFolder(ownerID, videoID string) string {
	return "videos/" + ownerID + "/" + videoID
}

func (f *fakeVideoService) Publish(ctx context.Context, video *models.Video) (*models.Video, error) {
	return video, nil
}

func (f *fakeVideoService) GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoDetail, error) {
	return nil, apperr.NotFound("video not found")
}

func (f *fakeVideoService) Owner(ctx context.Context, videoID string) (string, error) {
	return f.ownerID, nil
}

func (f *fakeVideoService) UpdateInfo(ctx context.Context, videoID, actorID string, req *models.UpdateVideoRequest, newThumbnailURL string) (*models.Video, string, error) {
	f.updateCalls++
	f.updateThumbnail = newThumbnailURL
	if actorID != f.ownerID {
		return nil, "", apperr.Forbidden("only the owner can update this video")
	}
	return &models.Video{ID: videoID, ThumbnailURL: newThumbnailURL}, "", nil
}

func (f *fakeVideoService) Delete(ctx context.Context, videoID, actorID string) error { return nil }

func (f *fakeVideoService) TogglePublish(ctx context.Context, videoID, actorID string) (bool, error) {
	return false, nil
}

func (f *fakeVideoService) List(ctx context.Context, params models.VideoListParams, page models.PageParams) ([]models.VideoSummary, int, error) {
	return nil, 0, nil
}

func (f *fakeVideoService) RecordView(ctx context.Context, videoID, viewerID string) error {
	return nil
}

func (f *fakeVideoService) Recommendations(ctx context.Context, videoID, viewerID string) ([]models.VideoSummary, error) {
	return nil, nil
}

type fakeMediaStore struct {
	uploads []string
	deletes []string
}

func (f *fakeMediaStore) Upload(ctx context.Context, key string, file io.Reader, contentType string) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeMediaStore) DeletePrefix(ctx context.Context, prefix string) error { return nil }

func (f *fakeMediaStore) PublicURL(key string) string { return "https://cdn.test/" + key }

func (f *fakeMediaStore) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, "https://cdn.test/") {
		return "", false
	}
	return strings.TrimPrefix(url, "https://cdn.test/"), true
}

func thumbnailForm(t *testing.T) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("thumbnail", "thumb.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)

	require.NoError(t, w.WriteField("title", "Updated title"))
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func updateInfoContext(t *testing.T, videoID, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, contentType := thumbnailForm(t)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/videos/"+videoID, body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "videoId", Value: videoID}}
	c.Set("userID", userID)

	return c, w
}

func TestUpdateInfoNonOwnerStoresNothing(t *testing.T) {
	service := &fakeVideoService{ownerID: uuid.NewString()}
	media := &fakeMediaStore{}
	h := NewVideoHandler(service, media)

	c, w := updateInfoContext(t, uuid.NewString(), uuid.NewString())
	h.UpdateInfo(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, media.uploads)
	assert.Zero(t, service.updateCalls)
}

func TestUpdateInfoOwnerReplacesThumbnail(t *testing.T) {
	ownerID := uuid.NewString()
	service := &fakeVideoService{ownerID: ownerID}
	media := &fakeMediaStore{}
	h := NewVideoHandler(service, media)

	c, w := updateInfoContext(t, uuid.NewString(), ownerID)
	h.UpdateInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, media.uploads, 1)
	assert.Equal(t, 1, service.updateCalls)
	assert.Equal(t, media.PublicURL(media.uploads[0]), service.updateThumbnail)
}
