package models

import "io"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// BackOffice reports whether the role belongs to the shop's own staff.
func (r Role) BackOffice() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Image    string   `json:"image,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Active   bool     `json:"active"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type OTPRequest struct {
	Email  string `json:"email"`
	OTP    string `json:"otp,omitempty"`
	UserID string `json:"userId,omitempty"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// CreateUserRequest is the back office's new account, usually a staff member.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Image     string `json:"image,omitempty"`
	Active    bool   `json:"active"`
}

// UserForm carries an admin edit of another account. Empty fields are left
// out of the multipart body.
type UserForm struct {
	Name      string
	Phone     string
	Address   string
	ImageURL  string
	ImageName string
	Image     io.Reader
}

type UpdateMyInfoRequest struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Image     string `json:"image,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
