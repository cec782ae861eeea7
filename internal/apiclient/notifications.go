package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	return out, c.getJSON(ctx, "/notifications", &out)
}

func (c *Client) NotificationsByType(ctx context.Context, t models.NotificationType) ([]models.Notification, error) {
	var out []models.Notification
	return out, c.getJSON(ctx, "/notifications/type/"+url.PathEscape(string(t)), &out)
}

func (c *Client) CreatePersonalNotification(ctx context.Context, req models.NotificationRequest) (models.Notification, error) {
	var out models.Notification
	return out, c.sendJSON(ctx, http.MethodPost, "/notifications/admin-create/personal", req, &out)
}

func (c *Client) CreateBroadcastNotification(ctx context.Context, req models.NotificationRequest) (models.Notification, error) {
	var out models.Notification
	req.TargetUserID = ""
	return out, c.sendJSON(ctx, http.MethodPost, "/notifications/admin-create/broadcast", req, &out)
}

func (c *Client) UpdateNotification(ctx context.Context, id int64, req models.NotificationRequest) (models.Notification, error) {
	var out models.Notification
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/notifications/update/%d", id), req, &out)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/notifications/admin-delete/%d", id), nil, nil)
}

func (c *Client) MyNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	return out, c.getJSON(ctx, "/notifications/myNotifications", &out)
}

func (c *Client) MyFirstNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	return out, c.getJSON(ctx, "/notifications/myNotifications/first-5", &out)
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var out int64
	return out, c.getJSON(ctx, "/notifications/myNotifications/unread-count", &out)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/notifications/myNotifications/mark-one-read/%d", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPut, "/notifications/myNotifications/mark-all-read", nil, nil)
}

func (c *Client) DeleteMyNotification(ctx context.Context, id int64) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/notifications/myNotifications/delete/%d", id), nil, nil)
}
