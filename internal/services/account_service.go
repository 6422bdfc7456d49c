package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/database"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("session expired or revoked")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	ErrEmailRequired    models.ValidationError = "Email is required."
	ErrPasswordTooShort models.ValidationError = "Password must be at least 8 characters."
)

// ClientInfo describes the browser a session is opened for.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// SessionToken is the signed cookie value for a new session.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

type AccountService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAccountService(db *gorm.DB, cfg *config.Config) *AccountService {
	return &AccountService{db: db, cfg: cfg, now: time.Now}
}

// SignUp creates the user and opens a session in one transaction.
func (s *AccountService) SignUp(ctx context.Context, req *dto.SignUpRequest, client ClientInfo) (*models.User, *SessionToken, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, nil, ErrEmailRequired
	}
	if len(req.Password) < minPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := models.User{
		Email:           email,
		Password:        string(hash),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		CanWorkRemotely: true,
		DateJoined:      now,
		LastLogin:       &now,
	}

	var token *SessionToken
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return models.ErrEmailExists
			}
			return err
		}
		var err error
		token, err = s.openSession(tx, user.ID, client)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, token, nil
}

// SignIn checks the password and opens a session. Every failure is
// reported as ErrInvalidCredentials.
func (s *AccountService) SignIn(ctx context.Context, req *dto.SignInRequest, client ClientInfo) (*models.User, *SessionToken, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(req.Email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	var token *SessionToken
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
			return err
		}
		var err error
		token, err = s.openSession(tx, user.ID, client)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now
	return &user, token, nil
}

// Authenticate resolves the session named by a verified token to its user.
func (s *AccountService) Authenticate(ctx context.Context, userID, sessionID uuid.UUID) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var sess models.Session
	if err := db.First(&sess, "id = ? AND user_id = ?", sessionID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if !sess.Active(s.now()) {
		return nil, ErrSessionInvalid
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Logout revokes the session so its cookie stops working even before expiry.
func (s *AccountService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}

// PurgeSessions deletes revoked and expired sessions.
func (s *AccountService) PurgeSessions(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("revoked = ? OR expires_at < ?", true, s.now().UTC()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (s *AccountService) openSession(tx *gorm.DB, userID uuid.UUID, client ClientInfo) (*SessionToken, error) {
	now := s.now().UTC()
	record := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.SessionExpiry),
		IP:        truncate(client.IP, 64),
		UserAgent: truncate(client.UserAgent, 255),
		CreatedAt: now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"sid": record.ID.String(),
		"iat": now.Unix(),
		"exp": record.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &SessionToken{Value: signed, ExpiresAt: record.ExpiresAt}, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
// Invalid input is sanitized first since postgres rejects it in text columns.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
