package application

import "errors"

// Kind identifies one registration rule. The set is closed.
type Kind string

const (
	KindEmptyUsername        Kind = "EMPTY_USERNAME"
	KindExistingUsername     Kind = "EXISTING_USERNAME"
	KindEmptyEmail           Kind = "EMPTY_EMAIL"
	KindNullEmail            Kind = "NULL_EMAIL"
	KindInvalidEmail         Kind = "INVALID_EMAIL"
	KindExistingEmail        Kind = "EXISTING_EMAIL"
	KindShortPassword        Kind = "SHORT_PASSWORD"
	KindNotMatchingPasswords Kind = "NOT_MATCHING_PASSWORDS"
)

var messages = map[Kind]string{
	KindEmptyUsername:        "username cannot be empty",
	KindExistingUsername:     "username already exists",
	KindEmptyEmail:           "email cannot be empty",
	KindNullEmail:            "email data source is unavailable",
	KindInvalidEmail:         "email is not valid",
	KindExistingEmail:        "email already exists",
	KindShortPassword:        "password must be at least 6 characters long",
	KindNotMatchingPasswords: "passwords do not match",
}

// Message returns the fixed message of k.
func (k Kind) Message() string { return messages[k] }

// ValidationError is the only error a validator returns. Error() is always the
// kind's fixed message; Err, when set, is the underlying cause.
type ValidationError struct {
	Kind Kind
	Err  error
}

func (e *ValidationError) Error() string { return e.Kind.Message() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches any *ValidationError of the same kind, so sentinels compare equal
// to errors that carry a cause.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func newValidationError(k Kind, cause error) *ValidationError {
	return &ValidationError{Kind: k, Err: cause}
}

var (
	ErrEmptyUsername        = &ValidationError{Kind: KindEmptyUsername}
	ErrExistingUsername     = &ValidationError{Kind: KindExistingUsername}
	ErrEmptyEmail           = &ValidationError{Kind: KindEmptyEmail}
	ErrNullEmail            = &ValidationError{Kind: KindNullEmail}
	ErrInvalidEmail         = &ValidationError{Kind: KindInvalidEmail}
	ErrExistingEmail        = &ValidationError{Kind: KindExistingEmail}
	ErrShortPassword        = &ValidationError{Kind: KindShortPassword}
	ErrNotMatchingPasswords = &ValidationError{Kind: KindNotMatchingPasswords}

	ErrUserNotFound = errors.New("user not found")
)

// KindOf returns the validation kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}
