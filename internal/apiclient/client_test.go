package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestIsPublic(t *testing.T) {
	cases := []struct {
		method, path string
		want         bool
	}{
		{http.MethodGet, "/books/12", true},
		{http.MethodGet, "/sub-categories", true},
		{http.MethodPost, "/books/create", false},
		{http.MethodPost, "/auth/token", true},
		{http.MethodPost, "/otp/verify-reset-password", true},
		{http.MethodGet, "/users/id-by-email/a@b.c", true},
		{http.MethodGet, "/orders/myOrders", false},
		{http.MethodGet, "/promotions/active", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsPublic(tc.method, tc.path), "%s %s", tc.method, tc.path)
	}
}

func TestTokenOnlyOnProtectedEndpoints(t *testing.T) {
	seen := map[string]string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen[r.URL.Path] = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"result":[]}`)
	})
	ctx := WithToken(context.Background(), "tok")

	_, err := c.ListBooks(ctx)
	require.NoError(t, err)
	_, err = c.MyOrders(ctx)
	require.NoError(t, err)

	assert.Empty(t, seen["/books"])
	assert.Equal(t, "Bearer tok", seen["/orders/myOrders"])
}

func TestEnvelopeAndBareBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/books/1":
			_, _ = io.WriteString(w, `{"id":1,"title":"Bare","price":20.5,"stockQuantity":3,"categoryId":4}`)
		case "/books/2":
			_, _ = io.WriteString(w, `{"code":1000,"result":{"id":2,"title":"Wrapped","price":"10","stockQuantity":0}}`)
		}
	})

	b1, err := c.GetBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bare", b1.Title)
	assert.True(t, b1.Price.Equal(decimal.RequireFromString("20.5")))

	b2, err := c.GetBook(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Wrapped", b2.Title)
	assert.False(t, b2.InStock())
}

func TestErrorKindsAndUnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/myOrders":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":1006,"message":"Unauthenticated"}`)
		case "/orders/9":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":1004,"message":"Order not found"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	cleared := false
	ctx := WithUnauthorizedHook(WithToken(context.Background(), "old"), func() { cleared = true })

	_, err := c.MyOrders(ctx)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Unauthenticated", MessageOf(err))
	assert.True(t, cleared)

	_, err = c.GetOrder(ctx, 9)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Order not found", MessageOf(err))

	_, err = c.ListOrders(ctx)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, nil)
	_, err := c.ListBooks(context.Background())
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestMultipartKeepsBoundaryContentType(t *testing.T) {
	var gotType string
	var gotFields map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		f, _, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		body, _ := io.ReadAll(f)
		gotFields["image"] = string(body)
		_, _ = io.WriteString(w, `{"result":{"id":7,"title":"New"}}`)
	})

	price := decimal.RequireFromString("12.5")
	stock := 4
	book, err := c.CreateBook(context.Background(), models.BookForm{
		Title:         "New",
		Price:         &price,
		CategoryID:    3,
		StockQuantity: &stock,
		Image:         strings.NewReader("png-bytes"),
		ImageName:     "cover.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), book.ID)
	assert.True(t, strings.HasPrefix(gotType, "multipart/form-data; boundary="), gotType)
	assert.Equal(t, "New", gotFields["title"])
	assert.Equal(t, "12.5", gotFields["price"])
	assert.Equal(t, "3", gotFields["categoryId"])
	assert.Equal(t, "4", gotFields["stockQuantity"])
	assert.Equal(t, "png-bytes", gotFields["image"])
}

func TestUploadReturnsPlainString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "/img/book/cover.png")
	})
	path, err := c.UploadImage(context.Background(), "book", "cover.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/img/book/cover.png", path)
}

func TestJSONBodyContentType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req models.CartQuantityRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.CartQuantityRequest{BookID: 5, Quantity: 3}, req)
		_, _ = io.WriteString(w, `{"result":null}`)
	})
	require.NoError(t, c.UpdateCartItem(WithToken(context.Background(), "t"), 5, 3))
}

func TestResult(t *testing.T) {
	ok := Capture(3, nil)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 3, ok.ValueOr(0))

	bad := Capture(0, &Error{Kind: KindNotFound})
	assert.False(t, bad.IsOk())
	assert.Equal(t, -1, bad.ValueOr(-1))
	assert.Equal(t, KindNotFound, bad.Kind())
}
