package service

import (
	"regexp"
	"strings"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{8,32}$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{8,16}$`)
	phonePattern    = regexp.MustCompile(`^0[3-9]\d{8}$`)
)

// ValidateNewUser checks an account created from the back office. Fields are
// trimmed in place.
func ValidateNewUser(req *models.CreateUserRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	var v models.ValidationErrors
	if !usernamePattern.MatchString(req.Username) {
		v.Add("username", "username must be 8-32 letters, numbers or underscores")
	}
	if !strings.Contains(req.Email, "@") {
		v.Add("email", "a valid email is required")
	}
	if !passwordPattern.MatchString(req.Password) {
		v.Add("password", "password must be 8-16 letters, numbers or underscores")
	}
	validatePhone(&v, req.Phone)
	return v.Err()
}

// ValidateProfile checks the fields a user may edit on an account.
func ValidateProfile(phone string) error {
	var v models.ValidationErrors
	validatePhone(&v, strings.TrimSpace(phone))
	return v.Err()
}

func validatePhone(v *models.ValidationErrors, phone string) {
	if phone != "" && !phonePattern.MatchString(phone) {
		v.Add("phone", "phone must be 10 digits starting with 0 and a second digit of 3-9")
	}
}

func ValidatePasswordChange(req models.ChangePasswordRequest) error {
	var v models.ValidationErrors
	if req.OldPassword == "" {
		v.Add("oldPassword", "current password is required")
	}
	if !passwordPattern.MatchString(req.NewPassword) {
		v.Add("newPassword", "password must be 8-16 letters, numbers or underscores")
	} else if req.NewPassword == req.OldPassword {
		v.Add("newPassword", "new password must differ from the current one")
	}
	return v.Err()
}

func ValidatePublisher(req *models.PublisherRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" {
		return models.ValidationErrors{{Field: "name", Message: "publisher name is required"}}
	}
	return nil
}
