package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neighborlyhelp/backend/internal/config"
	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/models"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidToken      = errors.New("invalid or expired refresh token")
	ErrUserNotFound      = errors.New("user not found")
)

// IdentityService owns the session: sign-in against the external identity
// provider's credential, this service's own token pair, sign-out, and
// profile updates.
type IdentityService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewIdentityService(db *gorm.DB, cfg *config.Config) *IdentityService {
	return &IdentityService{db: db, cfg: cfg}
}

// SignIn decodes the provider credential and establishes a session. A failed
// decode leaves everything untouched. First-time sign-in creates the user
// with default reputation; later sign-ins reuse the stored row.
func (s *IdentityService) SignIn(credential string) (*dto.AuthResponse, error) {
	claims, err := DecodeCredential(credential, s.cfg.GoogleClientID)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Where("google_id = ? OR email = ?", claims.Sub, claims.Email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		user = models.User{
			ID:                uuid.New(),
			GoogleID:          claims.Sub,
			Email:             claims.Email,
			Name:              claims.Name,
			Verified:          claims.Verified(),
			Avatar:            claims.Picture,
			Rating:            5.0,
			TotalHelped:       0,
			TotalRequests:     0,
			PreferredLanguage: "en",
			PaymentMethods:    []byte("[]"),
			JoinedAt:          time.Now().UTC(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("user created on first sign-in", "user_id", user.ID)
	} else if user.GoogleID == "" {
		// account existed by email only; attach the provider identity
		if err := s.db.Model(&user).Updates(map[string]interface{}{
			"google_id": claims.Sub,
			"verified":  claims.Verified(),
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to attach provider identity: %w", err)
		}
		user.GoogleID = claims.Sub
		user.Verified = claims.Verified()
	}

	return s.generateTokenPair(&user)
}

// Refresh rotates a refresh token into a fresh pair. A malformed, unknown,
// revoked or expired token is reported as ErrInvalidToken — the caller
// treats that as "no session", never as a crash.
func (s *IdentityService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	tokenHash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(&user)
}

// SignOut revokes the refresh token. Unknown tokens are ignored: signing
// out is unconditional and idempotent.
func (s *IdentityService) SignOut(refreshToken string) error {
	tokenHash := hashToken(refreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// GetUser loads a user by id.
func (s *IdentityService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateUser merges the non-nil fields of the partial edit into the user's
// row. A vanished user makes this a no-op.
func (s *IdentityService) UpdateUser(userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.PreferredLanguage != nil && *req.PreferredLanguage != "" {
		updates["preferred_language"] = *req.PreferredLanguage
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return &user, nil
}

// RecordRequestCreated bumps the owner's request counter.
func (s *IdentityService) RecordRequestCreated(userID uuid.UUID) {
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_requests", gorm.Expr("total_requests + 1")).Error; err != nil {
		slog.Error("failed to bump total_requests", "user_id", userID, "error", err)
	}
}

func (s *IdentityService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}

func (s *IdentityService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *IdentityService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
