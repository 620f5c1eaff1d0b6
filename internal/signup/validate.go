package signup

import (
	"strings"
	"unicode/utf8"

	"devhub/internal/models"
)

const (
	minFullNameLength = 2
	minPasswordLength = 6
)

// ValidateAccount runs the step 1 gate. The first failing rule wins.
func ValidateAccount(values map[string]string) error {
	fullName := values["fullName"]
	email := values["email"]
	password := values["password"]

	switch {
	case fullName == "" || utf8.RuneCountInString(fullName) < minFullNameLength:
		return ErrFullName
	case email == "" || !strings.Contains(email, "@"):
		return ErrEmail
	case password == "" || utf8.RuneCountInString(password) < minPasswordLength:
		return ErrPasswordLength
	case password != values["confirmPassword"]:
		return ErrPasswordMatch
	}

	switch values["userType"] {
	case models.UserTypeDeveloper, models.UserTypeClient:
		return nil
	}
	return ErrUserType
}
