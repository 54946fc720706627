// ===============================
// internal/services/user.go - User Accounts and Sessions
// ===============================

package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"videohub/internal/apperr"
	"videohub/internal/auth"
	"videohub/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db     *sqlx.DB
	tokens *auth.TokenManager
}

func NewUserService(db *sqlx.DB, tokens *auth.TokenManager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Register creates an account. Avatar and cover URLs are uploaded by
// the handler before this runs.
func (s *UserService) Register(ctx context.Context, req *models.RegisterUserRequest, avatarURL, coverURL string) (*models.User, error) {
	if validationErrors := req.ValidateForCreation(); len(validationErrors) > 0 {
		return nil, apperr.InvalidArgument(strings.Join(validationErrors, "; "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:            uuid.New().String(),
		Username:      strings.ToLower(strings.TrimSpace(req.Username)),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:      strings.TrimSpace(req.FullName),
		PasswordHash:  string(hash),
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}

	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, avatar_url, cover_image_url)
		VALUES (:id, :username, :email, :full_name, :password_hash, :avatar_url, :cover_image_url)
		RETURNING created_at, updated_at`

	rows, err := s.db.NamedQueryContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("username or email already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to read created user", err)
		}
	}

	return user, nil
}

// Login verifies credentials by username or email and issues a fresh
// token pair. The refresh token is stored on the user row, so logging
// in invalidates any previous session.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Username))
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if identifier == "" || req.Password == "" {
		return nil, apperr.InvalidArgument("username or email and password are required")
	}

	var user models.User
	err := s.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE username = $1 OR email = $1`, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.InvalidArgument("invalid credentials")
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{User: user, AuthTokens: *tokens}, nil
}

// Logout clears the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return apperr.Internal("failed to log out", err)
	}
	return nil
}

// RefreshTokens rotates the token pair. The presented refresh token
// must both validate and match the one stored on the user row.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	if refreshToken == "" {
		return nil, apperr.InvalidArgument("refresh token is required")
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Forbidden("invalid refresh token")
	}

	var stored sql.NullString
	err = s.db.GetContext(ctx, &stored,
		`SELECT refresh_token FROM users WHERE id = $1`, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if !stored.Valid || stored.String != refreshToken {
		return nil, apperr.Forbidden("refresh token is expired or revoked")
	}

	return s.issueTokens(ctx, claims.UserID)
}

func (s *UserService) issueTokens(ctx context.Context, userID string) (*models.AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, apperr.Internal("failed to issue access token", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, apperr.Internal("failed to issue refresh token", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`,
		refreshToken, userID)
	if err != nil {
		return nil, apperr.Internal("failed to store refresh token", err)
	}

	return &models.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	if len(req.NewPassword) < models.MinPasswordLength {
		return apperr.InvalidArgument("new password must be at least 8 characters")
	}

	var currentHash string
	err := s.db.GetContext(ctx, &currentHash,
		`SELECT password_hash FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.OldPassword)) != nil {
		return apperr.InvalidArgument("old password is incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		string(newHash), userID)
	if err != nil {
		return apperr.Internal("failed to update password", err)
	}

	return nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}

// UpdateAccount changes full name and/or email.
func (s *UserService) UpdateAccount(ctx context.Context, userID string, req *models.UpdateAccountRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" && email == "" {
		return nil, apperr.InvalidArgument("full name or email is required")
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			full_name = COALESCE(NULLIF($1, ''), full_name),
			email = COALESCE(NULLIF($2, ''), email),
			updated_at = NOW()
		WHERE id = $3`, fullName, email, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Internal("failed to update account", err)
	}

	return s.GetByID(ctx, userID)
}

// UpdateAvatar stores the new avatar URL and returns the previous one
// so the handler can delete the replaced file.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (string, error) {
	return s.swapImage(ctx, userID, "avatar_url", avatarURL)
}

// UpdateCoverImage stores the new cover URL and returns the previous one.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID, coverURL string) (string, error) {
	return s.swapImage(ctx, userID, "cover_image_url", coverURL)
}

func (s *UserService) swapImage(ctx context.Context, userID, column, newURL string) (string, error) {
	var oldURL string
	query := `
		UPDATE users SET ` + column + ` = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING (SELECT ` + column + ` FROM users WHERE id = $2)`
	err := s.db.GetContext(ctx, &oldURL, query, newURL, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Internal("failed to update image", err)
	}
	return oldURL, nil
}

// ChannelProfile loads the public channel page for a username.
// viewerID may be empty for anonymous requests.
func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.InvalidArgument("username is required")
	}

	var profile models.ChannelProfile
	err := s.db.GetContext(ctx, &profile, `
		SELECT
			u.id, u.username, u.full_name, u.avatar_url, u.cover_image_url, u.created_at,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = u.id) AS subscriber_count,
			(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = u.id) AS subscribed_count,
			EXISTS(
				SELECT 1 FROM subscriptions
				WHERE channel_id = u.id AND subscriber_id = $2
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1`, username, nullableID(viewerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("channel not found")
		}
		return nil, apperr.Internal("failed to load channel", err)
	}

	return &profile, nil
}

// WatchHistory returns the user's history, most recent first.
func (s *UserService) WatchHistory(ctx context.Context, userID string, page models.PageParams) ([]models.WatchHistoryEntry, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM watch_history WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count watch history", err)
	}

	rows := []struct {
		models.VideoSummary
		WatchedAt sql.NullTime `db:"watched_at"`
	}{}

	err = s.db.SelectContext(ctx, &rows, `
		SELECT
			v.id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration, v.views, v.created_at,
			u.id AS owner_id, u.username AS owner_username,
			u.full_name AS owner_full_name, u.avatar_url AS owner_avatar_url,
			h.watched_at
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.position DESC
		LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal("failed to load watch history", err)
	}

	entries := make([]models.WatchHistoryEntry, 0, len(rows))
	for i := range rows {
		rows[i].AttachOwner()
		entry := models.WatchHistoryEntry{Video: rows[i].VideoSummary}
		if rows[i].WatchedAt.Valid {
			entry.WatchedAt = rows[i].WatchedAt.Time
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

// validID rejects route ids that are not UUIDs before they reach a
// uuid column comparison, which Postgres would report as a cast error.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.InvalidArgument("invalid id format")
	}
	return nil
}

// nullableID maps an empty viewer id to a value that matches no row.
func nullableID(id string) string {
	if id == "" {
		return "00000000-0000-0000-0000-000000000000"
	}
	return id
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
