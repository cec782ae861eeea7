package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

func TestIsPublicPage(t *testing.T) {
	for route, want := range map[string]bool{
		"":               true,
		"/":              true,
		"/?ref=mail":     true,
		"/books":         true,
		"/book/12":       true,
		"/category/3":    true,
		"/search?q=go":   true,
		"/signin":        true,
		"/cart":          false,
		"/checkout":      false,
		"/orders/7":      false,
		"/admin/books":   false,
		"/notifications": false,
	} {
		assert.Equal(t, want, IsPublicPage(route), route)
	}
}

func TestClassify(t *testing.T) {
	var fields models.ValidationErrors
	fields.Add("title", "title is required")

	cases := []struct {
		err     error
		status  int
		kind    string
		message string
	}{
		{fields, http.StatusBadRequest, "validation", "title: title is required"},
		{fmt.Errorf("add: %w", cart.ErrStaffCannotBuy), http.StatusForbidden, "forbidden", "admin and staff accounts cannot add items to cart"},
		{cart.ErrNotSignedIn, http.StatusUnauthorized, "unauthorized", "please sign in to use the cart"},
		{service.ErrNothingSelected, http.StatusBadRequest, "bad_request", "select at least one item"},
		{service.ErrOrderLocked, http.StatusConflict, "conflict", ""},
		{service.ErrUnselectedLines, http.StatusConflict, "conflict", "remove unselected or out-of-stock items before placing the order"},
		{badRequest("id must be a positive number"), http.StatusBadRequest, "bad_request", "id must be a positive number"},
		{&apiclient.Error{Kind: apiclient.KindConflict, Message: "Category existed"}, http.StatusConflict, "conflict", "Category existed"},
		{&apiclient.Error{Kind: apiclient.KindServer, Message: "boom"}, http.StatusBadGateway, "server", "boom"},
		{errors.New("weird"), http.StatusInternalServerError, "internal", "something went wrong"},
	}
	for _, tc := range cases {
		status, body := classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.kind, body.Error, tc.err.Error())
		if tc.message != "" {
			assert.Equal(t, tc.message, body.Message)
		}
	}
}

func TestWriteErrorRedirectsOffPrivatePages(t *testing.T) {
	unauthorized := &apiclient.Error{Kind: apiclient.KindUnauthorized, Message: "Unauthenticated"}

	for route, redirect := range map[string]string{"/cart": "/signin", "/book/3": ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("X-Current-Route", route)
		rec := httptest.NewRecorder()
		writeError(rec, req, zap.NewNop(), unauthorized)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Unauthenticated", body.Message)
		assert.Equal(t, redirect, body.Redirect, route)
	}
}

func TestInt64Param(t *testing.T) {
	r := chi.NewRouter()
	var got int64
	var gotErr error
	r.Get("/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = int64Param(r, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	for _, bad := range []string{"0", "-3", "abc"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/"+bad, nil))
		assert.ErrorIs(t, gotErr, errBadRequest, bad)
	}
}
