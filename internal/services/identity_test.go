package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neighborlyhelp/backend/internal/config"
	"github.com/neighborlyhelp/backend/internal/models"
)

// mockDB opens GORM over a sqlmock connection. Returning is disabled so every
// write is a plain exec, which keeps the expectations uniform.
func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, WithoutReturning: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func userRows(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "google_id", "email", "name", "verified", "rating",
		"total_helped", "total_requests", "preferred_language", "payment_methods",
	}).AddRow(
		u.ID.String(), u.GoogleID, u.Email, u.Name, u.Verified, u.Rating,
		u.TotalHelped, u.TotalRequests, u.PreferredLanguage, []byte(`[]`),
	)
}

func parseAccessClaims(t *testing.T, signed, secret string) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestHashTokenDeterministic(t *testing.T) {
	a := hashToken("token-one")
	b := hashToken("token-one")
	c := hashToken("token-two")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// hex-encoded sha256
	assert.Len(t, a, 64)
}

func TestGenerateAccessTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
	svc := NewIdentityService(nil, cfg)

	user := &models.User{
		ID:    uuid.New(),
		Email: "maria@example.com",
		Name:  "Maria Santos",
	}

	signed, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "maria@example.com", claims["email"])
	assert.Equal(t, "Maria Santos", claims["name"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, 5*time.Second)
}

func TestSignInFirstTimeCreatesUser(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.SignIn(fakeCredential(t, map[string]interface{}{
		"sub":            "google-user-123",
		"email":          "maria@example.com",
		"name":           "Maria Santos",
		"email_verified": true,
	}))
	require.NoError(t, err)

	assert.Equal(t, "google-user-123", resp.User.GoogleID)
	assert.Equal(t, "maria@example.com", resp.User.Email)
	assert.Equal(t, "Maria Santos", resp.User.Name)
	assert.True(t, resp.User.Verified)
	assert.Equal(t, 5.0, resp.User.Rating)
	assert.Equal(t, "en", resp.User.PreferredLanguage)
	assert.NotEmpty(t, resp.RefreshToken)

	claims := parseAccessClaims(t, resp.AccessToken, "test-secret")
	assert.Equal(t, resp.User.ID.String(), claims["sub"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignOutThenSignInReusesAccount(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	stored := models.User{
		ID:                uuid.New(),
		GoogleID:          "google-user-123",
		Email:             "maria@example.com",
		Name:              "Maria Santos",
		Verified:          true,
		Rating:            4.8,
		PreferredLanguage: "en",
	}

	// signing out revokes whatever token is presented
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.SignOut("old-refresh-token"))

	// signing back in finds the stored account, no insert
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(stored))
	mock.ExpectExec(`INSERT INTO "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.SignIn(fakeCredential(t, map[string]interface{}{
		"sub":   "google-user-123",
		"email": "maria@example.com",
		"name":  "Maria Santos",
	}))
	require.NoError(t, err)

	assert.Equal(t, stored.ID, resp.User.ID)
	assert.Equal(t, 4.8, resp.User.Rating)

	// the new session is tied to the same subject as before
	claims := parseAccessClaims(t, resp.AccessToken, "test-secret")
	assert.Equal(t, stored.ID.String(), claims["sub"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInAttachesProviderIdentityToEmailAccount(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	stored := models.User{
		ID:                uuid.New(),
		Email:             "maria@example.com",
		Name:              "Maria Santos",
		Rating:            4.8,
		PreferredLanguage: "en",
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(stored))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.SignIn(fakeCredential(t, map[string]interface{}{
		"sub":            "google-user-123",
		"email":          "maria@example.com",
		"name":           "Maria Santos",
		"email_verified": true,
	}))
	require.NoError(t, err)

	assert.Equal(t, stored.ID, resp.User.ID)
	assert.Equal(t, "google-user-123", resp.User.GoogleID)
	assert.True(t, resp.User.Verified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInFailsWhenProviderAttachFails(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	stored := models.User{
		ID:    uuid.New(),
		Email: "maria@example.com",
		Name:  "Maria Santos",
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(stored))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnError(errors.New("connection reset"))

	_, err := svc.SignIn(fakeCredential(t, map[string]interface{}{
		"sub": "google-user-123", "email": "maria@example.com", "name": "Maria Santos",
	}))
	require.Error(t, err)

	// no token pair is issued on a failed write
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignOutUnknownTokenIsIdempotent(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.SignOut("never-issued"))
	require.NoError(t, svc.SignOut("never-issued"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func refreshTokenRows(userID uuid.UUID, raw string, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked"}).
		AddRow(uuid.New().String(), userID.String(), hashToken(raw), expiresAt, false)
}

func TestRefreshRotatesToken(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	user := models.User{
		ID:                uuid.New(),
		GoogleID:          "google-user-123",
		Email:             "maria@example.com",
		Name:              "Maria Santos",
		Rating:            5.0,
		PreferredLanguage: "en",
	}
	raw := "raw-refresh-token"

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnRows(refreshTokenRows(user.ID, raw, time.Now().Add(time.Hour)))
	// old token revoked before the new pair is issued
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(user))
	mock.ExpectExec(`INSERT INTO "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Refresh(raw)
	require.NoError(t, err)

	assert.NotEqual(t, raw, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)

	claims := parseAccessClaims(t, resp.AccessToken, "test-secret")
	assert.Equal(t, user.ID.String(), claims["sub"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshUnknownToken(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Refresh("never-issued")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshExpiredTokenIsRevoked(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewIdentityService(db, testConfig())

	raw := "raw-refresh-token"
	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnRows(refreshTokenRows(uuid.New(), raw, time.Now().Add(-time.Hour)))
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Minute}
	svc := NewIdentityService(nil, cfg)

	signed, err := svc.generateAccessToken(&models.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
