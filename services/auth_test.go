package services

import (
	"testing"
	"time"

	"legaldocs_api_go/models"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)
	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestRegisterUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(db, RegisterInput{
		Name:     "Ana López",
		Email:    "Ana@Example.COM",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.False(t, user.IsStaff)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.Password)

	// Short passwords are rejected
	_, err = RegisterUser(db, RegisterInput{Name: "B", Email: "b@example.com", Password: "short"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)

	// Duplicate email
	_, err = RegisterUser(db, RegisterInput{Name: "Ana Again", Email: "ana@example.com", Password: "password123"})
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "login@example.com", false)

	user, err := AuthenticateUser(db, "LOGIN@example.com", "password123")
	assert.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)

	var permissionErr *PermissionError
	_, err = AuthenticateUser(db, "login@example.com", "wrong")
	assert.ErrorAs(t, err, &permissionErr)

	_, err = AuthenticateUser(db, "nobody@example.com", "password123")
	assert.ErrorAs(t, err, &permissionErr)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "gone@example.com", false)
	assert.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := AuthenticateUser(db, "gone@example.com", "password123")
	var permissionErr *PermissionError
	assert.ErrorAs(t, err, &permissionErr)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "session@example.com", false)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	validated, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, user.Email, validated.User.Email)

	assert.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestValidateSessionExpired(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "expired@example.com", false)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NoError(t, db.Model(session).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	// Expired sessions are removed on validation
	var count int64
	db.Model(&models.Session{}).Where("token = ?", session.Token).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cleanup@example.com", false)

	fresh, err := CreateSession(db, user.ID, "127.0.0.1", "a")
	assert.NoError(t, err)
	stale, err := CreateSession(db, user.ID, "127.0.0.1", "b")
	assert.NoError(t, err)
	assert.NoError(t, db.Model(stale).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	assert.NoError(t, CleanupExpiredSessions(db))

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(1), count)
	_, err = ValidateSession(db, fresh.Token)
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "profile@example.com", false)

	updated, err := UpdateProfile(db, user.ID, ProfileUpdate{Name: strPtr("New Name")})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "profile@example.com", updated.Email)

	_, err = UpdateProfile(db, user.ID, ProfileUpdate{Email: strPtr("bad-email")})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
