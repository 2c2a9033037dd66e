package auth

import (
	"strings"
)

// ValidateEmail checks if an email has a valid format.
func ValidateEmail(email string) bool {
	// A very basic email validation check
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
