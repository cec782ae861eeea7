package handlers

import (
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/notify"
)

type NotificationHandler struct {
	api          *apiclient.Client
	pollInterval time.Duration
	upgrader     websocket.Upgrader
	log          *zap.Logger
}

func NewNotificationHandler(api *apiclient.Client, pollInterval time.Duration, origins []string, log *zap.Logger) *NotificationHandler {
	h := &NotificationHandler{api: api, pollInterval: pollInterval, log: log}
	h.upgrader = websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, origin) || slices.Contains(origins, "*")
		},
	}
	return h
}

// Mine handles GET /api/notifications; ?latest=true returns only the first few.
func (h *NotificationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Notification
		err  error
	)
	if r.URL.Query().Get("latest") == "true" {
		list, err = h.api.MyFirstNotifications(r.Context())
	} else {
		list, err = h.api.MyNotifications(r.Context())
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.api.UnreadCount(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, unreadMessage{Unread: n})
}

// MarkRead handles PUT /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.MarkNotificationRead(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.api.MarkAllNotificationsRead(r.Context()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMine handles DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteMine(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.DeleteMyNotification(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type unreadMessage struct {
	Unread int64 `json:"unread"`
}

// Stream handles GET /api/notifications/ws. The unread count is pushed on
// connect and then every poll interval until the browser goes away.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	// The server's request timeouts would otherwise end the stream.
	_ = conn.SetReadDeadline(time.Time{})

	ctx := r.Context()
	var once sync.Once
	gone := make(chan struct{})
	closeGone := func() { once.Do(func() { close(gone) }) }

	poller := notify.NewPoller(h.api.UnreadCount, func(n int64) {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(unreadMessage{Unread: n}); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
			closeGone()
		}
	}, h.pollInterval, h.log)
	poller.Start(ctx)
	defer poller.Stop()

	// Reading is only for control frames and noticing the close.
	go func() {
		defer closeGone()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-gone:
	case <-ctx.Done():
	}
}

// List handles GET /api/admin/notifications, optionally ?type=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Notification
		err  error
	)
	if t := models.NotificationType(r.URL.Query().Get("type")); t != "" {
		if !t.Valid() {
			writeError(w, r, h.log, badRequest("unknown notification type"))
			return
		}
		list, err = h.api.NotificationsByType(r.Context(), t)
	} else {
		list, err = h.api.ListNotifications(r.Context())
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func validateNotification(req models.NotificationRequest) error {
	var v models.ValidationErrors
	if strings.TrimSpace(req.Content) == "" {
		v.Add("content", "content is required")
	}
	if !req.Type.Valid() {
		v.Add("type", "unknown notification type")
	}
	if req.Type.Personal() && req.TargetUserID == "" {
		v.Add("targetUserId", "a personal notification needs a recipient")
	}
	return v.Err()
}

// Create handles POST /api/admin/notifications. Personal types go to one
// user, the rest to everyone of that audience.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := validateNotification(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var (
		n   models.Notification
		err error
	)
	if req.Type.Personal() {
		n, err = h.api.CreatePersonalNotification(r.Context(), req)
	} else {
		n, err = h.api.CreateBroadcastNotification(r.Context(), req)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// Update handles PUT /api/admin/notifications/{id}
func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req models.NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := validateNotification(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	n, err := h.api.UpdateNotification(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Delete handles DELETE /api/admin/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.DeleteNotification(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
