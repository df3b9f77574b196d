package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"legaldocs_api_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (7 days)
	DefaultSessionDuration = 7 * 24 * time.Hour
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// RegisterInput contains the fields accepted when registering a user
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser validates the input and creates a new non-staff user
func RegisterUser(db *gorm.DB, input RegisterInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	if len(input.Password) < MinPasswordLength {
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hash,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Resource: "user", Message: "email already registered"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// AuthenticateUser verifies credentials and returns the user on success.
// Wrong email and wrong password are indistinguishable to the caller.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &PermissionError{Message: "invalid credentials"}
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !user.IsActive || !CheckPassword(password, user.Password) {
		return nil, &PermissionError{Message: "invalid credentials"}
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return &user, nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for a user
func CreateSession(db *gorm.DB, userID, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	err := db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		// Delete expired session
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", result.Error)
	}
	return nil
}

// ProfileUpdate contains the fields a user may change on their own profile
type ProfileUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile applies a partial update to the caller's own user record
func UpdateProfile(db *gorm.DB, userID string, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", ID: userID}
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
		}
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, &ValidationError{Field: "email", Message: "is not a valid email address"}
		}
		user.Email = email
	}

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Resource: "user", Message: "email already registered"}
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}
