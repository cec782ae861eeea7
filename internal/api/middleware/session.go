package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

type (
	sessionKey struct{}
	cookieKey  struct{}
)

// Sessions loads the browser's session from its cookie, creating one when
// missing, and hands the request context the session's token along with a
// 401 hook that signs the session out.
type Sessions struct {
	Manager *session.Manager
	TTL     time.Duration
	Secure  bool
	Log     *zap.Logger
	Now     func() time.Time
}

func (m *Sessions) Handler(next http.Handler) http.Handler {
	now := m.Now
	if now == nil {
		now = time.Now
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var id string
		if c, err := r.Cookie(session.CookieName); err == nil {
			id = c.Value
		}
		s, created, err := m.Manager.Load(ctx, id)
		if err != nil {
			m.Log.Error("load session", zap.Error(err))
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}
		if created {
			if err := m.Manager.Save(ctx, s); err != nil {
				m.Log.Error("save new session", zap.Error(err))
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		m.setCookie(w, s.ID)

		ctx = context.WithValue(ctx, sessionKey{}, s)
		ctx = context.WithValue(ctx, cookieKey{}, m.setCookie)
		if s.SignedIn(now()) {
			ctx = apiclient.WithToken(ctx, s.Token)
		}
		// The hook may fire while a handler holds this session's update
		// lock, so it clears credentials on its own goroutine.
		sid := s.ID
		hookCtx := context.WithoutCancel(ctx)
		ctx = apiclient.WithUnauthorizedHook(ctx, func() {
			go m.Manager.ClearCredentials(hookCtx, sid)
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setCookie replaces any session cookie already queued on w.
func (m *Sessions) setCookie(w http.ResponseWriter, id string) {
	h := w.Header()
	queued := h.Values("Set-Cookie")
	h.Del("Set-Cookie")
	for _, c := range queued {
		if !strings.HasPrefix(c, session.CookieName+"=") {
			h.Add("Set-Cookie", c)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RenewSessionCookie points the browser at session id, for handlers that
// rotate the session. It must run before the response is written.
func RenewSessionCookie(w http.ResponseWriter, r *http.Request, id string) {
	if set, ok := r.Context().Value(cookieKey{}).(func(http.ResponseWriter, string)); ok {
		set(w, id)
	}
}

// SessionFrom returns the session as it was loaded for this request.
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// SessionID is "" outside the Sessions middleware.
func SessionID(ctx context.Context) string {
	if s := SessionFrom(ctx); s != nil {
		return s.ID
	}
	return ""
}

// WithSession is for tests and for handlers that swap in an updated copy.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}
