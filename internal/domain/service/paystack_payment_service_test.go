package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewPaystackPaymentService("sk_test_secret")
	body := []byte(`{"event":"charge.success","data":{"reference":"SUB-1"}}`)

	require.NoError(t, svc.VerifyWebhookSignature(signBody("sk_test_secret", body), body))
}

func TestVerifyWebhookSignatureRejectsWrongKey(t *testing.T) {
	svc := NewPaystackPaymentService("sk_test_secret")
	body := []byte(`{"event":"charge.success"}`)

	err := svc.VerifyWebhookSignature(signBody("sk_other_key", body), body)
	assert.Error(t, err)
}

func TestVerifyWebhookSignatureRejectsTamperedBody(t *testing.T) {
	svc := NewPaystackPaymentService("sk_test_secret")
	body := []byte(`{"event":"charge.success","data":{"amount":100}}`)
	signature := signBody("sk_test_secret", body)

	tampered := []byte(`{"event":"charge.success","data":{"amount":100000}}`)
	assert.Error(t, svc.VerifyWebhookSignature(signature, tampered))
}

func TestVerifyWebhookSignatureRejectsEmpty(t *testing.T) {
	svc := NewPaystackPaymentService("sk_test_secret")
	assert.Error(t, svc.VerifyWebhookSignature("", []byte(`{}`)))
}
