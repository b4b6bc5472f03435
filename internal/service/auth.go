package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "session"

type AuthService struct {
	userRepository    repository.UserRepository
	sessionRepository repository.SessionRepository
	emailService      *EmailService
	sessionExpiry     time.Duration
	bcryptCost        int
	cookieSecure      bool
	now               func() time.Time
}

func NewAuthService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	emailService *EmailService,
	sessionExpiry time.Duration,
	bcryptCost int,
	cookieSecure bool,
) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		emailService:      emailService,
		sessionExpiry:     sessionExpiry,
		bcryptCost:        bcryptCost,
		cookieSecure:      cookieSecure,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the account and its first session. No user row is
// written when the email is taken.
func (s *AuthService) Register(email, name, password string) (*model.User, *model.Session, error) {
	email = validation.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validation.Required(
		validation.Field{Name: "name", Value: name},
		validation.Field{Name: "email", Value: email},
		validation.Field{Name: "password", Value: password},
	); err != nil {
		return nil, nil, invalid("Name, email, and password are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, invalidErr(err)
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, nil, invalidErr(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, invalidErr(err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailAlreadyExists
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	err = s.emailService.SendWelcomeEmail(user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, session, nil
}

func (s *AuthService) Login(email, password string) (*model.User, *model.Session, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, invalid("Email and password are required")
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.ComparePassword(password, user.PasswordHash); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout is idempotent.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepository.Delete(token)
}

// RequireAuth resolves a session token to its user id. Absent, unknown and
// expired sessions yield ErrUnauthenticated; an expired row is deleted first.
func (s *AuthService) RequireAuth(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	session, err := s.sessionRepository.ByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrUnauthenticated
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	if session.IsExpired(s.now()) {
		if err := s.sessionRepository.Delete(token); err != nil {
			slog.Warn("failed to delete expired session", "error", err, "user_id", session.UserID)
		}
		return "", ErrUnauthenticated
	}

	return session.UserID, nil
}

// PurgeExpiredSessions removes every expired session. Request handling does
// not depend on it.
func (s *AuthService) PurgeExpiredSessions() (int64, error) {
	return s.sessionRepository.DeleteExpired(s.now())
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) createSession(userID string) (*model.Session, error) {
	token, err := s.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionExpiry),
		CreatedAt: now,
	}

	err = s.sessionRepository.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SetSessionCookie writes the cookie with the same lifetime as the stored session.
func (s *AuthService) SetSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		MaxAge:   int(s.sessionExpiry.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
