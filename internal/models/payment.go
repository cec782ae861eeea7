package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "COD"
	PaymentVNPay PaymentMethod = "VNPAY"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSuccess   PaymentStatus = "SUCCESS"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunding PaymentStatus = "REFUNDING"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	Method    PaymentMethod   `json:"method"`
	Status    PaymentStatus   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PaymentRequest struct {
	OrderID int64           `json:"orderId"`
	Method  PaymentMethod   `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
}

type VNPayURLRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	AmountInVND int64           `json:"amountInVND"`
}

type VNPayURLResponse struct {
	URL     string `json:"URL"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// VNPayReturn is the gateway's redirect back to the shop, parsed from vnp_* params.
type VNPayReturn struct {
	TxnRef        string          `json:"txnRef,omitempty"`
	ResponseCode  string          `json:"responseCode"`
	TransactionNo string          `json:"transactionNo"`
	BankCode      string          `json:"bankCode"`
	BankTranNo    string          `json:"bankTranNo"`
	OrderInfo     string          `json:"orderInfo"`
	Amount        decimal.Decimal `json:"amount"`
	PayDate       string          `json:"payDate"`
	Success       bool            `json:"success"`
}

// TransactionStatus is the backend's verdict on a VNPay return.
type TransactionStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Amount        string `json:"amount,omitempty"`
	BankCode      string `json:"bankCode,omitempty"`
	BankTranNo    string `json:"bankTranNo,omitempty"`
	PayDate       string `json:"payDate,omitempty"`
	OrderInfo     string `json:"orderInfo,omitempty"`
	TransactionNo string `json:"transactionNo,omitempty"`
	Success       bool   `json:"success"`
}
