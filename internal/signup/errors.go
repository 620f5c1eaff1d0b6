package signup

import "errors"

// ValidationError is a rule failure shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Step 1 rules, in the order they are checked.
var (
	ErrFullName       = &ValidationError{Field: "fullName", Message: "Please enter your full name"}
	ErrEmail          = &ValidationError{Field: "email", Message: "Please enter a valid email"}
	ErrPasswordLength = &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	ErrPasswordMatch  = &ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	ErrUserType       = &ValidationError{Field: "userType", Message: "Please select user type"}
)

var (
	ErrSelectUserTypeFirst = &ValidationError{Field: "userType", Message: "Please select user type first"}

	ErrSubmitInProgress  = errors.New("signup submission already in progress")
	ErrInvalidTransition = errors.New("invalid wizard transition")
)
