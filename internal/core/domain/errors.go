package domain

import "errors"

var ErrInvalidRequest = errors.New("missing required fields")
var ErrAccountExists = errors.New("account already registered")
var ErrRegistrationFailed = errors.New("registration failed")
var ErrAccountNotFound = errors.New("account not found")
var ErrBadCredentials = errors.New("wrong password")
var ErrSessionUnavailable = errors.New("session unavailable")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrAvatarNotFound = errors.New("avatar not found")

// ValidationRule identifies which credential format rule was violated.
type ValidationRule string

const (
	RuleAccountTooShort     ValidationRule = "account_too_short"
	RuleAccountLeadingDigit ValidationRule = "account_leading_digit"
	RuleAccountCharset      ValidationRule = "account_charset"
	RulePasswordTooShort    ValidationRule = "password_too_short"
	RulePasswordCharset     ValidationRule = "password_charset"
	RulePasswordMismatch    ValidationRule = "password_mismatch"
)

// ValidationError reports a credential format violation. Callers must not
// proceed past one; match with errors.As.
type ValidationError struct {
	Rule    ValidationRule
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(rule ValidationRule, msg string) *ValidationError {
	return &ValidationError{Rule: rule, Message: msg}
}
