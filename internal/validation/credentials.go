package validation

import "regexp"

// Password strength rules applied at registration. Each rule is checked
// independently so the client can show every unmet requirement at once.
const passwordMinLength = 8

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordHasDigit   = regexp.MustCompile(`\d`)
	passwordHasUpper   = regexp.MustCompile(`[A-Z]`)
	passwordHasLower   = regexp.MustCompile(`[a-z]`)
	passwordHasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// IsValidEmail reports whether the address has the basic user@host.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PasswordResult holds the outcome of a password strength check.
type PasswordResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidatePassword checks a password against every strength rule and returns
// a message for each unmet one.
func ValidatePassword(password string) PasswordResult {
	var errs []string

	if len(password) < passwordMinLength {
		errs = append(errs, "Password must be at least 8 characters long.")
	}
	if !passwordHasDigit.MatchString(password) {
		errs = append(errs, "Password must include at least one number.")
	}
	if !passwordHasUpper.MatchString(password) {
		errs = append(errs, "Password must include at least one uppercase letter.")
	}
	if !passwordHasLower.MatchString(password) {
		errs = append(errs, "Password must include at least one lowercase letter.")
	}
	if !passwordHasSpecial.MatchString(password) {
		errs = append(errs, "Password must include at least one special character.")
	}

	return PasswordResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
