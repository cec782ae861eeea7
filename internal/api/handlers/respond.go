package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/catalog"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

// publicPages are the browser routes a signed-out visitor may stay on after
// a 401.
var publicPages = []string{"/books", "/book/", "/category", "/about", "/qa", "/faq", "/search", "/signin", "/signup"}

func IsPublicPage(route string) bool {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" || route == "/" {
		return true
	}
	for _, p := range publicPages {
		if strings.HasPrefix(route, p) {
			return true
		}
	}
	return false
}

// currentRoute is the page the browser was on, as the front end reports it.
func currentRoute(r *http.Request) string {
	if route := r.Header.Get("X-Current-Route"); route != "" {
		return route
	}
	return "/"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error    string                  `json:"error"`
	Message  string                  `json:"message"`
	Fields   models.ValidationErrors `json:"fields,omitempty"`
	Redirect string                  `json:"redirect,omitempty"`
}

// writeError turns err into the blocking notice the page shows. Backend
// messages are passed through.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status, body := classify(err)
	if status == http.StatusUnauthorized && !IsPublicPage(currentRoute(r)) {
		body.Redirect = "/signin"
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var v models.ValidationErrors
	if errors.As(err, &v) {
		return http.StatusBadRequest, errorBody{Error: "validation", Message: v.Error(), Fields: v}
	}

	switch {
	case errors.Is(err, cart.ErrNotSignedIn):
		return http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "please sign in to use the cart"}
	case errors.Is(err, cart.ErrStaffCannotBuy):
		return http.StatusForbidden, errorBody{Error: "forbidden", Message: "admin and staff accounts cannot add items to cart"}
	case errors.Is(err, cart.ErrNotInCart), errors.Is(err, catalog.ErrNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errorBody{Error: "not_found", Message: errMessage(err)}
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, service.ErrOrderLocked), errors.Is(err, service.ErrNoPendingPayment),
		errors.Is(err, service.ErrUnselectedLines):
		return http.StatusConflict, errorBody{Error: "conflict", Message: errMessage(err)}
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, service.ErrNothingSelected),
		errors.Is(err, service.ErrAddressRequired), errors.Is(err, service.ErrUnknownMethod),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, errorBody{Error: "bad_request", Message: errMessage(err)}
	}

	kind := apiclient.KindOf(err)
	body := errorBody{Error: string(kind), Message: apiclient.MessageOf(err)}
	switch kind {
	case apiclient.KindUnauthorized:
		return http.StatusUnauthorized, body
	case apiclient.KindForbidden:
		return http.StatusForbidden, body
	case apiclient.KindNotFound:
		return http.StatusNotFound, body
	case apiclient.KindBadRequest:
		return http.StatusBadRequest, body
	case apiclient.KindConflict:
		return http.StatusConflict, body
	case apiclient.KindNetwork, apiclient.KindServer, apiclient.KindDecode:
		return http.StatusBadGateway, body
	}
	return http.StatusInternalServerError, errorBody{Error: "internal", Message: "something went wrong"}
}

// errMessage strips the "pkg: " prefix of sentinel errors.
func errMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return msg
}

var errBadRequest = errors.New("bad request")

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Is(target error) bool {
	return target == errBadRequest
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || n <= 0 {
		return 0, badRequest(name + " must be a positive number")
	}
	return n, nil
}
