// Package paystack talks to the Paystack transaction API.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.paystack.co"

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	logger    *zap.Logger
}

func NewClient(baseURL, secretKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeBody struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req ports.InitializeRequest) (*ports.InitializeResult, error) {
	var out envelope[initializeData]
	err := c.do(ctx, http.MethodPost, "/transaction/initialize", initializeBody{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}, &out)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Transaction initialized",
		zap.String("reference", out.Data.Reference),
		zap.Int64("amount", req.AmountMinor))

	return &ports.InitializeResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*ports.Transaction, error) {
	var out envelope[verifyData]
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return nil, err
	}

	return &ports.Transaction{
		Reference:   out.Data.Reference,
		Status:      out.Data.Status,
		AmountMinor: out.Data.Amount,
		Currency:    out.Data.Currency,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("paystack: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paystack: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("paystack: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("paystack: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp envelope[json.RawMessage]
		_ = json.Unmarshal(respBody, &errResp)
		c.logger.Error("Paystack request failed",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", errResp.Message))
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("paystack: decode response: %w", err)
	}
	return nil
}
