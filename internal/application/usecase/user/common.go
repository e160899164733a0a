// Package user contains operator account administration use cases.
package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// UserOutput is an operator account without its password hash.
type UserOutput struct {
	ID          uuid.UUID
	Email       string
	PhoneNumber string
	IsAdmin     bool
	IsActive    bool
	Blocked     bool
}

func toOutput(u *entity.AppUser) *UserOutput {
	return &UserOutput{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		Blocked:     u.Blocked,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", domainerror.NewUserError(
			domainerror.ErrCodeUserInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}
	return email, nil
}

func normalizePhone(phone string) (string, error) {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phonePattern.MatchString(phone) {
		return "", domainerror.NewUserError(
			domainerror.ErrCodeInvalidPhoneNumber,
			"phone number must contain 8 to 15 digits, optionally prefixed by +",
			domainerror.ErrInvalidPhoneNumber,
		)
	}
	return phone, nil
}

func hashPassword(passwordService adapter.PasswordService, password, confirmation string) (string, error) {
	if password != confirmation {
		return "", domainerror.NewUserError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}
	if err := passwordService.ValidatePasswordStrength(password); err != nil {
		return "", domainerror.NewUserError(
			domainerror.ErrCodeUserWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}
	hash, err := passwordService.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func findUser(ctx context.Context, userRepo adapter.UserRepository, id uuid.UUID) (*entity.AppUser, error) {
	u, err := userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func rejectSelf(target, requestedBy uuid.UUID) error {
	if target == requestedBy {
		return domainerror.NewUserError(
			domainerror.ErrCodeCannotModifySelf,
			"cannot block or deactivate your own account",
			domainerror.ErrCannotModifySelf,
		)
	}
	return nil
}
