package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gearswap/pkg/logger"
)

// PaystackPaymentService implements PaymentGatewayService over the Paystack HTTP API.
type PaystackPaymentService struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackPaymentService(secretKey string) *PaystackPaymentService {
	return &PaystackPaymentService{
		secretKey: secretKey,
		baseURL:   "https://api.paystack.co",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackInitRequest struct {
	Reference   string                 `json:"reference"`
	Amount      int64                  `json:"amount"` // subunits
	Currency    string                 `json:"currency,omitempty"`
	Email       string                 `json:"email"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	ID       int64   `json:"id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PaidAt   string  `json:"paid_at"`
	Reference string `json:"reference"`
}

func (s *PaystackPaymentService) Initialize(ctx context.Context, req GatewayInitRequest) (*GatewayInitResponse, error) {
	logger.Info("Initializing gateway transaction %s, amount %.2f", req.Reference, req.Amount)

	body := paystackInitRequest{
		Reference:   req.Reference,
		Amount:      int64(req.Amount * 100),
		Currency:    req.Currency,
		Email:       req.Email,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transaction/initialize", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	env, err := s.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data paystackInitData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &GatewayInitResponse{
		Reference:   data.Reference,
		CheckoutURL: data.AuthorizationURL,
		AccessCode:  data.AccessCode,
	}, nil
}

func (s *PaystackPaymentService) VerifyTransaction(ctx context.Context, reference string) (*GatewayVerifyResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	env, err := s.do(httpReq)
	if err != nil {
		return nil, err
	}

	var data paystackVerifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	status := "pending"
	switch data.Status {
	case "success":
		status = "success"
	case "failed", "abandoned", "reversed":
		status = "failed"
	}

	return &GatewayVerifyResponse{
		Reference:     data.Reference,
		Status:        status,
		TransactionID: fmt.Sprintf("%d", data.ID),
		Amount:        data.Amount / 100,
		Currency:      data.Currency,
		PaidAt:        data.PaidAt,
	}, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header, an
// HMAC-SHA512 of the raw body keyed with the secret key.
func (s *PaystackPaymentService) VerifyWebhookSignature(signature string, body []byte) error {
	if signature == "" {
		return fmt.Errorf("no signature found in webhook")
	}

	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

func (s *PaystackPaymentService) do(req *http.Request) (*paystackEnvelope, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Gateway API error: %s", string(body))
		return nil, fmt.Errorf("gateway API error: %s", string(body))
	}

	var env paystackEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !env.Status {
		return nil, fmt.Errorf("gateway rejected request: %s", env.Message)
	}

	return &env, nil
}
