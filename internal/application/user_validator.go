package application

import (
	"context"
	"slices"
	"unicode/utf8"

	"github.com/oksasatya/go-user-registration/pkg/validation"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 6

// ValidateUsername returns username unchanged when it is non-empty and not
// already taken. A failing username lookup is reported as EXISTING_USERNAME
// with the lookup error as cause: uniqueness could not be confirmed.
func (s *Service) ValidateUsername(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrEmptyUsername
	}
	if s.Repo == nil {
		return "", ErrExistingUsername
	}
	usernames, err := s.Repo.GetAllUsernames(ctx)
	if err != nil {
		return "", newValidationError(KindExistingUsername, err)
	}
	if slices.Contains(usernames, username) {
		return "", ErrExistingUsername
	}
	return username, nil
}

// ValidatePasswords checks the confirmation before the length, so a short
// mismatched pair reports NOT_MATCHING_PASSWORDS.
func (s *Service) ValidatePasswords(password, rePassword string) (string, error) {
	if password != rePassword {
		return "", ErrNotMatchingPasswords
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", ErrShortPassword
	}
	return password, nil
}

// ValidateUserEmail runs, in order: data source availability, emptiness,
// format, uniqueness. The snapshot is read before any other check.
func (s *Service) ValidateUserEmail(ctx context.Context, email string) (string, error) {
	if s.Repo == nil {
		return "", ErrNullEmail
	}
	users, err := s.Repo.GetAllEmails(ctx)
	if err != nil {
		return "", newValidationError(KindNullEmail, err)
	}
	if users == nil {
		return "", ErrNullEmail
	}
	if email == "" {
		return "", ErrEmptyEmail
	}
	if !validation.IsEmail(email) {
		return "", ErrInvalidEmail
	}
	for _, u := range users {
		if u != nil && u.Email == email {
			return "", ErrExistingEmail
		}
	}
	return email, nil
}
