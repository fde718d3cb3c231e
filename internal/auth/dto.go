package auth

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 8
	passwordMaxLen = 20

	passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterDTO is the transport shape for account creation.
type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Field: "username", Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Field: "password", Msg: "password is required"}
	}
	return nil
}

// Validate enforces the registration format rules for both fields.
func (d RegisterDTO) Validate() error {
	if err := ValidateUsername(d.Username); err != nil {
		return err
	}
	return ValidatePassword(d.Password)
}

// ValidateUsername enforces 3-20 characters, letters, digits and underscores only.
func ValidateUsername(username string) error {
	if username == "" {
		return ValidationError{Field: "username", Msg: "username is required"}
	}
	if len(username) < usernameMinLen {
		return ValidationError{Field: "username", Msg: fmt.Sprintf("username must be at least %d characters", usernameMinLen)}
	}
	if len(username) > usernameMaxLen {
		return ValidationError{Field: "username", Msg: fmt.Sprintf("username must be no more than %d characters", usernameMaxLen)}
	}
	for _, r := range username {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return ValidationError{Field: "username", Msg: "username may only contain letters, digits and underscores"}
	}
	return nil
}

// ValidatePassword enforces 8-20 characters with at least one uppercase
// letter, one digit and one special character.
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Msg: "password is required"}
	}
	if len(password) < passwordMinLen {
		return ValidationError{Field: "password", Msg: fmt.Sprintf("password must be at least %d characters", passwordMinLen)}
	}
	if len(password) > passwordMaxLen {
		return ValidationError{Field: "password", Msg: fmt.Sprintf("password must be no more than %d characters", passwordMaxLen)}
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return ValidationError{Field: "password", Msg: "password must contain at least one uppercase letter"}
	}
	if !hasDigit {
		return ValidationError{Field: "password", Msg: "password must contain at least one digit"}
	}
	if !hasSpecial {
		return ValidationError{Field: "password", Msg: fmt.Sprintf("password must contain at least one special character (%s)", passwordSpecials)}
	}
	return nil
}
