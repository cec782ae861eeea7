package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) CreatePaymentRecord(ctx context.Context, req models.PaymentRequest) (models.Payment, error) {
	var out models.Payment
	return out, c.sendJSON(ctx, http.MethodPost, "/payments/create-payment-record", req, &out)
}

func (c *Client) MarkPaymentDone(ctx context.Context, paymentID int64) (models.Payment, error) {
	var out models.Payment
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/payments/payment-done/%d", paymentID), nil, &out)
}

func (c *Client) CreateVNPayURL(ctx context.Context, req models.VNPayURLRequest) (models.VNPayURLResponse, error) {
	var out models.VNPayURLResponse
	return out, c.sendJSON(ctx, http.MethodPost, "/payments/create-vnpay-url", req, &out)
}

// VNPayReturn forwards the gateway's raw vnp_* parameters to the backend.
func (c *Client) VNPayReturn(ctx context.Context, params url.Values) (models.TransactionStatus, error) {
	var out models.TransactionStatus
	return out, c.getJSON(ctx, "/payments/vnpay-return?"+params.Encode(), &out)
}
