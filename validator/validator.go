package validator

import (
	"regexp"
	"time"

	"uninest/constants"
	"uninest/errors"

	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// ValidateStruct runs the binding-tag rules of a request struct.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid request body", err)
	}
	return nil
}

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", nil)
	}
	if err := validate.Var(email, "email"); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", err)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Password is required", nil)
	}
	if len(password) < constants.PasswordMinLength {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 8 characters", nil)
	}
	return nil
}

// ValidatePhone checks the phone number format. Empty is allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid phone number", nil)
	}
	return nil
}

// ValidateBookingDates requires a stay that ends strictly after it starts.
func ValidateBookingDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Start and end dates are required", nil)
	}
	if !end.After(start) {
		return errors.NewAppError(errors.ErrCodeInvalidDates, "End date must be after start date", nil)
	}
	return nil
}

// ValidateRating bounds a review rating.
func ValidateRating(rating int) error {
	if rating < constants.RatingMin || rating > constants.RatingMax {
		return errors.NewAppError(errors.ErrCodeInvalidRating, "Rating must be between 1 and 5", nil)
	}
	return nil
}
