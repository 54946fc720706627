// ===============================
// internal/handlers/user.go - Accounts, Sessions and Channel Pages
// ===============================

package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/auth"
	"videohub/internal/middleware"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// mediaStore is the slice of the storage client the handlers use.
type mediaStore interface {
	Upload(ctx context.Context, key string, file io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, bool)
}

type UserHandler struct {
	service       *services.UserService
	media         mediaStore
	tokens        *auth.TokenManager
	secureCookies bool
}

func NewUserHandler(service *services.UserService, media mediaStore, tokens *auth.TokenManager, secureCookies bool) *UserHandler {
	return &UserHandler{service: service, media: media, tokens: tokens, secureCookies: secureCookies}
}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// uploadImage pushes a multipart image to the media store under the
// prefix and returns its public URL.
func uploadImage(c *gin.Context, media mediaStore, header *multipart.FileHeader, prefix string, maxSize int64) (string, error) {
	if header.Size > maxSize {
		return "", apperr.InvalidArgument("image file is too large")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return "", apperr.InvalidArgument("unsupported image format")
	}

	file, err := header.Open()
	if err != nil {
		return "", apperr.Internal("failed to read uploaded image", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	if err := media.Upload(c.Request.Context(), key, file, contentType); err != nil {
		return "", apperr.Internal("failed to store image", err)
	}

	return media.PublicURL(key), nil
}

// deleteByURL best-effort removes a replaced media file.
func (h *UserHandler) deleteByURL(c *gin.Context, url string) {
	if key, ok := h.media.KeyFromURL(url); ok {
		_ = h.media.Delete(c.Request.Context(), key)
	}
}

func (h *UserHandler) setAuthCookies(c *gin.Context, tokens *models.AuthTokens) {
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken,
		h.accessMaxAge(), "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken,
		h.refreshMaxAge(), "/", "", h.secureCookies, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
}

// cookie lifetimes mirror the configured token TTLs; the tokens
// themselves carry the authoritative expiry
func (h *UserHandler) accessMaxAge() int  { return int(h.tokens.AccessTTL().Seconds()) }
func (h *UserHandler) refreshMaxAge() int { return int(h.tokens.RefreshTTL().Seconds()) }

// Register handles multipart signup: fields plus a required avatar and
// optional cover image.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid form data"))
		return
	}

	if validationErrors := req.ValidateForCreation(); len(validationErrors) > 0 {
		fail(c, apperr.InvalidArgument(strings.Join(validationErrors, "; ")))
		return
	}

	avatarHeader, err := c.FormFile("avatar")
	if err != nil {
		fail(c, apperr.InvalidArgument("avatar image is required"))
		return
	}

	prefix := "avatars/" + strings.ToLower(strings.TrimSpace(req.Username))
	avatarURL, err := uploadImage(c, h.media, avatarHeader, prefix, models.MaxAvatarSize)
	if err != nil {
		fail(c, err)
		return
	}

	coverURL := ""
	if coverHeader, err := c.FormFile("coverImage"); err == nil {
		coverURL, err = uploadImage(c, h.media, coverHeader, prefix, models.MaxCoverImageSize)
		if err != nil {
			fail(c, err)
			return
		}
	}

	user, err := h.service.Register(c.Request.Context(), &req, avatarURL, coverURL)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	h.setAuthCookies(c, &result.AuthTokens)
	respond(c, http.StatusOK, result, "Logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}

	h.clearAuthCookies(c)
	respond(c, http.StatusOK, nil, "Logged out successfully")
}

// RefreshToken rotates the session from the refresh cookie or body.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	tokens, err := h.service.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		fail(c, err)
		return
	}

	h.setAuthCookies(c, tokens)
	respond(c, http.StatusOK, tokens, "Tokens refreshed successfully")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Password changed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.InvalidArgument("invalid request body"))
		return
	}

	user, err := h.service.UpdateAccount(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user, "Account updated successfully")
}

// UpdateAvatar uploads the new image first, then swaps the URL and
// deletes the old file. A failed upload leaves the account untouched.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", models.MaxAvatarSize, h.service.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", models.MaxCoverImageSize, h.service.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) updateImage(c *gin.Context, field string, maxSize int64, swap func(ctx context.Context, userID, url string) (string, error), message string) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile(field)
	if err != nil {
		fail(c, apperr.InvalidArgument(field+" image is required"))
		return
	}

	newURL, err := uploadImage(c, h.media, header, "avatars/"+userID, maxSize)
	if err != nil {
		fail(c, err)
		return
	}

	oldURL, err := swap(c.Request.Context(), userID, newURL)
	if err != nil {
		fail(c, err)
		return
	}

	if oldURL != "" && oldURL != newURL {
		h.deleteByURL(c, oldURL)
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user, message)
}

// ChannelProfile serves the public channel page for a username.
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.service.ChannelProfile(c.Request.Context(), username, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

// WatchHistory pages through the caller's history, newest first.
func (h *UserHandler) WatchHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page := pageParams(c, 10, 50)
	entries, total, err := h.service.WatchHistory(c.Request.Context(), userID, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, models.NewPagedList(entries, total, page), "Watch history fetched successfully")
}
