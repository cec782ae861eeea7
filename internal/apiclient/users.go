package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListStaff(ctx context.Context) ([]models.User, error) {
	var out []models.User
	return out, c.getJSON(ctx, "/users/staffs", &out)
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var out models.User
	return out, c.sendJSON(ctx, http.MethodPost, "/users/create", req, &out)
}

// UpdateUser edits another account. The backend takes a form so a new
// avatar can ride along.
func (c *Client) UpdateUser(ctx context.Context, id string, form models.UserForm) (models.User, error) {
	fields := map[string]string{}
	for k, v := range map[string]string{"name": form.Name, "phone": form.Phone, "address": form.Address} {
		if v != "" {
			fields[k] = v
		}
	}
	var files []formFile
	if form.Image != nil {
		name := form.ImageName
		if name == "" {
			name = "image"
		}
		files = append(files, formFile{field: "image", name: name, r: form.Image})
	} else if form.ImageURL != "" {
		fields["imageUrl"] = form.ImageURL
	}

	var out models.User
	return out, c.sendMultipart(ctx, http.MethodPut, "/users/update/"+url.PathEscape(id), fields, files, &out)
}

// ChangeRole flips an account between customer and staff.
func (c *Client) ChangeRole(ctx context.Context, id string) (models.User, error) {
	var out models.User
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/users/change-role/%s", url.PathEscape(id)), nil, &out)
}

func (c *Client) UpdateMyInfo(ctx context.Context, req models.UpdateMyInfoRequest) (models.User, error) {
	var out models.User
	return out, c.sendJSON(ctx, http.MethodPut, "/users/myInfo", req, &out)
}

func (c *Client) ChangeMyPassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/change-my-password", req, nil)
}
