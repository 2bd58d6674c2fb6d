package service

import (
	"context"
)

// GatewayInitRequest is a request to open a checkout session.
type GatewayInitRequest struct {
	Reference   string
	Amount      float64
	Currency    string
	Email       string
	CallbackURL string
	Metadata    map[string]interface{}
}

// GatewayInitResponse is the checkout handle returned by the gateway.
type GatewayInitResponse struct {
	Reference   string
	CheckoutURL string
	AccessCode  string
}

// GatewayVerifyResponse is the gateway's view of a transaction.
type GatewayVerifyResponse struct {
	Reference     string
	Status        string // success, failed, pending
	TransactionID string
	Amount        float64
	Currency      string
	PaidAt        string
}

// PaymentGatewayService talks to the external payment processor.
type PaymentGatewayService interface {
	Initialize(ctx context.Context, req GatewayInitRequest) (*GatewayInitResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*GatewayVerifyResponse, error)
	// VerifyWebhookSignature checks the signature header against the raw
	// webhook body before the payload is trusted.
	VerifyWebhookSignature(signature string, body []byte) error
}
