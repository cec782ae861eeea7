package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (models.TokenResponse, error) {
	var out models.TokenResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/auth/token", req, &out)
}

func (c *Client) Refresh(ctx context.Context, token string) (models.TokenResponse, error) {
	var out models.TokenResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/auth/refresh", models.RefreshRequest{Token: token}, &out)
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/logout", models.RefreshRequest{Token: token}, nil)
}

func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	var out models.User
	return out, c.sendJSON(ctx, http.MethodPost, "/users/signup", req, &out)
}

func (c *Client) UserIDByEmail(ctx context.Context, email string) (string, error) {
	var out string
	return out, c.getJSON(ctx, "/users/id-by-email/"+url.PathEscape(email), &out)
}

func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/otp/send-by-email", models.OTPRequest{Email: email}, nil)
}

func (c *Client) SendResetOTP(ctx context.Context, email, userID string) error {
	req := models.OTPRequest{Email: email, UserID: userID}
	return c.sendJSON(ctx, http.MethodPost, "/otp/send-by-email-reset-password", req, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, req models.OTPRequest) (bool, error) {
	var out bool
	return out, c.sendJSON(ctx, http.MethodPost, "/otp/verify", req, &out)
}

func (c *Client) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/otp/verify-reset-password", req, nil)
}

func (c *Client) MyInfo(ctx context.Context) (models.User, error) {
	var out models.User
	return out, c.getJSON(ctx, "/users/myInfo", &out)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	return out, c.getJSON(ctx, "/users", &out)
}

func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	state := "inactive"
	if active {
		state = "active"
	}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%s/%s", state, url.PathEscape(id)), nil, nil)
}
