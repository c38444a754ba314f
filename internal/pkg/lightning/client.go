package lightning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DavidKiarie/CircleFund/internal/pkg/env"
)

const defaultWalletAPIBaseURL = "https://api.blink.sv/wallet/v1"

// WalletClient is the interface the dispatcher sends through; the HTTP
// implementation below talks to the hosted Lightning wallet API.
type WalletClient interface {
	SendPayment(ctx context.Context, address string, amountSats int64, memo string) (*PaymentResponse, error)
	GetBalance(ctx context.Context) (*Balance, error)
}

// Client is an HTTP client for the Lightning wallet API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// PaymentResponse is the wallet API's answer to a send request.
type PaymentResponse struct {
	PaymentHash string `json:"payment_hash"`
	Status      string `json:"status"`
	FeeSats     int64  `json:"fee_sats"`
}

// Balance is the wallet's spendable balance.
type Balance struct {
	BalanceSats int64  `json:"balance_sats"`
	Currency    string `json:"currency"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClientFromEnv builds a wallet client from environment configuration.
func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(env.GetEnv("WALLET_API_BASE_URL", defaultWalletAPIBaseURL), "/"),
		APIKey:  strings.TrimSpace(env.GetEnv("WALLET_API_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendPayment sends sats to a Lightning address. Upstream error text is
// preserved so the per-item failure message in the ledger stays usable for
// manual remediation.
func (c *Client) SendPayment(ctx context.Context, address string, amountSats int64, memo string) (*PaymentResponse, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("WALLET_API_KEY is not configured")
	}
	if amountSats <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %d sats", amountSats)
	}

	payload := map[string]interface{}{
		"destination": address,
		"amount_sats": amountSats,
		"memo":        memo,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/payments/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet api request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("wallet api error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("wallet api error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out PaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	return &out, nil
}

// GetBalance queries the wallet's spendable balance.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("WALLET_API_KEY is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/balance", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet api request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet api error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out Balance
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode balance response: %w", err)
	}
	return &out, nil
}
