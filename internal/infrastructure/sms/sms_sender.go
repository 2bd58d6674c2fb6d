package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gearswap/pkg/config"
	"gearswap/pkg/logger"
)

// SMSSender delivers short text notifications.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

type httpSMSSender struct {
	apiKey   string
	senderID string
	baseURL  string
	client   *http.Client
}

func NewHTTPSMSSender(cfg *config.Config) SMSSender {
	return &httpSMSSender{
		apiKey:   cfg.SMSApiKey,
		senderID: cfg.SMSSenderID,
		baseURL:  cfg.SMSBaseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	SMS     string `json:"sms"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	APIKey  string `json:"api_key"`
}

func (s *httpSMSSender) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return fmt.Errorf("no phone number provided for SMS")
	}

	body := smsRequest{
		To:      phone,
		From:    s.senderID,
		SMS:     message,
		Type:    "plain",
		Channel: "generic",
		APIKey:  s.apiKey,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/sms/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute SMS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SMS API error: %s", string(respBody))
	}

	logger.Info("SMS sent to %s", phone)
	return nil
}
