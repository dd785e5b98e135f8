package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/freightdeck/freightdeck/internal/shared"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validateSignup(in SignupInput) error {
	missing := make([]string, 0, 4)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"email", in.Email},
		{"password", in.Password},
		{"companyName", in.CompanyName},
		{"phoneNumber", in.PhoneNumber},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", shared.ErrValidation, strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(in.Email) {
		return fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", shared.ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain a letter and a number", shared.ErrValidation)
	}
	return nil
}

var nonDigits = regexp.MustCompile(`\D`)

// formatMobile normalizes an Indian mobile number to +91 form.
func formatMobile(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if strings.HasPrefix(digits, "91") && len(digits) == 12 {
		return "+" + digits
	}
	return "+91" + digits
}
