package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
const secureTokenURL = "https://securetoken.googleapis.com/v1"

// FirebaseRestClient signs users in through the Identity Toolkit REST API,
// which the Admin SDK does not expose.
type FirebaseRestClient struct {
	apiKey string
	client *http.Client
}

func NewFirebaseRestClient(apiKey string) *FirebaseRestClient {
	return &FirebaseRestClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

func (c *FirebaseRestClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	endpoint := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", identityToolkitURL, c.apiKey)

	var result signInResponse
	if err := c.post(ctx, endpoint, payload, &result); err != nil {
		return "", "", err
	}

	return result.IDToken, result.RefreshToken, nil
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *FirebaseRestClient) RefreshIDToken(ctx context.Context, refreshToken string) (string, string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := fmt.Sprintf("%s/token?key=%s", secureTokenURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("token refresh failed with status %d", resp.StatusCode)
	}

	var result refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}

	return result.IDToken, result.RefreshToken, nil
}

func (c *FirebaseRestClient) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Message != "" {
			return fmt.Errorf("identity toolkit: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("identity toolkit request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
