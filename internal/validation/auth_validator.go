package validation

import "taskr/internal/domain"

const (
	MessageEmailInvalid     = "Email is not valid."
	MessagePasswordTooShort = "Password must be at least 8 characters long."
	MessageNameTooLong      = "Name must be 30 characters or less."
	MessageFormIncomplete   = "Please fill in all fields."
)

// AuthValidator validates the sign-in and registration forms.
type AuthValidator struct{}

// NewAuthValidator creates a new auth validator
func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

// ValidateSignIn checks the email and password fields of the sign-in form.
func (av *AuthValidator) ValidateSignIn(email, password string) error {
	validationError := NewValidationError()

	if !IsFormFilled(domain.SignIn, "", email, password) {
		validationError.AddError("form", ErrorTypeRequired, MessageFormIncomplete, nil)
		return validationError
	}

	av.checkEmail(validationError, email)
	av.checkPassword(validationError, password)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateRegistration checks every field of the registration form.
func (av *AuthValidator) ValidateRegistration(name, email, password string) error {
	validationError := NewValidationError()

	if !IsFormFilled(domain.Registration, name, email, password) {
		validationError.AddError("form", ErrorTypeRequired, MessageFormIncomplete, nil)
		return validationError
	}

	if !ValidateName(name) {
		validationError.AddError("name", ErrorTypeInvalidLength, MessageNameTooLong, name)
	}
	av.checkEmail(validationError, email)
	av.checkPassword(validationError, password)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (av *AuthValidator) checkEmail(ve *ValidationError, email string) {
	if !ValidateEmail(email) {
		ve.AddError("email", ErrorTypeInvalidFormat, MessageEmailInvalid, email)
	}
}

// Password values are never stored on the error.
func (av *AuthValidator) checkPassword(ve *ValidationError, password string) {
	if !ValidatePassword(password) {
		ve.AddError("password", ErrorTypeInvalidLength, MessagePasswordTooShort, nil)
	}
}
