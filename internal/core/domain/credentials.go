package domain

import "unicode/utf8"

const (
	minAccountLength  = 6
	minPasswordLength = 8
)

// CheckAccount validates an account handle: at least 6 characters, must
// not start with a digit, ASCII letters and digits only. Rules are checked
// in that order and the first violation wins.
func CheckAccount(account string) error {
	if utf8.RuneCountInString(account) < minAccountLength {
		return newValidationError(RuleAccountTooShort, "account must be at least 6 characters")
	}
	if isDigit(account[0]) {
		return newValidationError(RuleAccountLeadingDigit, "account must not start with a digit")
	}
	if !isLettersAndDigits(account) {
		return newValidationError(RuleAccountCharset, "account may only contain letters and digits")
	}
	return nil
}

// CheckPassword validates a raw password: at least 8 characters, ASCII
// letters and digits only.
func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return newValidationError(RulePasswordTooShort, "password must be at least 8 characters")
	}
	if !isLettersAndDigits(password) {
		return newValidationError(RulePasswordCharset, "password may only contain letters and digits")
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isLettersAndDigits reports whether s consists solely of ASCII letters
// and digits. Bytes are checked directly, so any multi-byte rune fails.
func isLettersAndDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			continue
		}
		return false
	}
	return true
}
