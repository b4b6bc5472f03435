package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/validation"
)

type UserService struct {
	userRepository    repository.UserRepository
	sessionRepository repository.SessionRepository
	emailService      *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		emailService:      emailService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes name and email. Taking another account's email
// fails with ErrEmailAlreadyExists. On an email change the old address is
// told, and every session except currentToken is signed out.
func (s *UserService) UpdateProfile(userID, currentToken, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = validation.NormalizeEmail(email)

	if name == "" || email == "" {
		return nil, invalid("Name and email are required")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, invalidErr(err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, invalidErr(err)
	}

	user, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}

	oldEmail := user.Email
	if email != oldEmail {
		existing, err := s.userRepository.ByEmail(email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailAlreadyExists
		}
	}

	user.Name = name
	user.Email = email
	user.UpdatedAt = nowUTC()

	err = s.userRepository.Update(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if oldEmail != email {
		revoked, err := s.sessionRepository.DeleteByUser(user.ID, currentToken)
		if err != nil {
			slog.Error("failed to revoke sessions after email change", "error", err, "user_id", user.ID)
		} else if revoked > 0 {
			slog.Info("sessions revoked after email change", "user_id", user.ID, "count", revoked)
		}

		err = s.emailService.SendEmailChangeNotification(oldEmail, email, name)
		if err != nil {
			slog.Warn("failed to send email change notification", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}
