package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:8080/bookverse/api"
	DefaultTimeout = 60 * time.Second

	maxBodyBytes = 10 << 20
)

var publicGetPrefixes = []string{
	"/books",
	"/authors",
	"/publishers",
	"/series",
	"/sup-categories",
	"/sub-categories",
}

// Auth endpoints never carry a token so an expired one cannot break sign-in.
var publicAuthPrefixes = []string{
	"/auth/token",
	"/auth/refresh",
	"/users/signup",
	"/users/id-by-email",
	"/otp/send-by-email",
	"/otp/send-by-email-reset-password",
	"/otp/verify",
	"/otp/verify-reset-password",
}

// Client talks to the BookVerse REST API. It is safe for concurrent use; the
// caller's token travels in the request context.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type ctxKey int

const (
	tokenKey ctxKey = iota
	unauthorizedKey
)

// WithToken attaches the bearer token used for protected endpoints.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithUnauthorizedHook registers fn to run whenever the API answers 401.
// The session layer uses it to drop stored credentials.
func WithUnauthorizedHook(ctx context.Context, fn func()) context.Context {
	return context.WithValue(ctx, unauthorizedKey, fn)
}

func IsPublic(method, path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, p := range publicAuthPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	if method != http.MethodGet {
		return false
	}
	for _, p := range publicGetPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodDelete, path, body, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Method: method, Path: path, Err: fmt.Errorf("encode body: %w", err)}
		}
		r = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, r, "application/json", out)
}

// formFile is one file part of a multipart body.
type formFile struct {
	field string
	name  string
	r     io.Reader
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, files []formFile, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return &Error{Kind: KindDecode, Method: method, Path: path, Err: err}
		}
	}
	for _, f := range files {
		if f.r == nil {
			continue
		}
		part, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			return &Error{Kind: KindDecode, Method: method, Path: path, Err: err}
		}
		if _, err := io.Copy(part, f.r); err != nil {
			return &Error{Kind: KindDecode, Method: method, Path: path, Err: fmt.Errorf("copy %s: %w", f.field, err)}
		}
	}
	if err := mw.Close(); err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, Err: err}
	}
	// The writer's content type carries the boundary; never JSON here.
	return c.do(ctx, method, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if !IsPublic(method, path) {
		if token := TokenFrom(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindNetwork, Status: res.StatusCode, Method: method, Path: path, Err: err}
	}
	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if res.StatusCode >= 400 {
		apiErr := errorFromBody(res.StatusCode, raw)
		apiErr.Method, apiErr.Path = method, path
		if res.StatusCode == http.StatusUnauthorized {
			if fn, ok := ctx.Value(unauthorizedKey).(func()); ok && fn != nil {
				fn()
			}
		}
		return apiErr
	}

	if err := decodeResult(raw, out); err != nil {
		return &Error{Kind: KindDecode, Status: res.StatusCode, Method: method, Path: path, Err: err}
	}
	return nil
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorFromBody(status int, raw []byte) *Error {
	e := &Error{Kind: kindForStatus(status), Status: status}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		e.Code = env.Code
		e.Message = env.Message
	} else if s := strings.TrimSpace(string(raw)); s != "" && len(s) < 512 {
		e.Message = s
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// decodeResult unwraps {"result": T}. Bodies without the envelope are decoded
// as T directly, and a non-JSON body is accepted for *string targets.
func decodeResult(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if !json.Valid(raw) {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		return fmt.Errorf("response is not JSON")
	}
	if raw[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return err
		}
		if result, ok := fields["result"]; ok {
			raw = result
		}
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, out)
}
