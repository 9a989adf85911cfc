// Package daily provisions private video rooms on the Daily REST API.
package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.daily.co/v1"

type APIError struct {
	StatusCode int
	Info       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daily: status %d: %s", e.StatusCode, e.Info)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type roomProperties struct {
	Exp               int64 `json:"exp"`
	MaxParticipants   int   `json:"max_participants"`
	EnableChat        bool  `json:"enable_chat"`
	EnableScreenshare bool  `json:"enable_screenshare"`
}

type createRoomBody struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties roomProperties `json:"properties"`
}

type roomResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}

// CreateRoom creates a private room. When a room with the same name
// already exists, it is looked up and returned instead, so retries for a
// booking resolve to the same URL.
func (c *Client) CreateRoom(ctx context.Context, req ports.RoomRequest) (*ports.Room, error) {
	body := createRoomBody{
		Name:    req.Name,
		Privacy: "private",
		Properties: roomProperties{
			Exp:               req.ExpiresAt.Unix(),
			MaxParticipants:   req.MaxParticipants,
			EnableChat:        req.EnableChat,
			EnableScreenshare: req.EnableScreenshare,
		},
	}

	var room roomResponse
	err := c.do(ctx, http.MethodPost, "/rooms", body, &room)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && strings.Contains(apiErr.Info, "already exists") {
		c.logger.Info("Room already exists, reusing", zap.String("room", req.Name))
		return c.GetRoom(ctx, req.Name)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Info("Room created", zap.String("room", room.Name))
	return &ports.Room{Name: room.Name, URL: room.URL}, nil
}

func (c *Client) GetRoom(ctx context.Context, name string) (*ports.Room, error) {
	var room roomResponse
	if err := c.do(ctx, http.MethodGet, "/rooms/"+url.PathEscape(name), nil, &room); err != nil {
		return nil, err
	}
	return &ports.Room{Name: room.Name, URL: room.URL}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("daily: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("daily: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("daily: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("daily: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		info := errResp.Info
		if info == "" {
			info = strings.TrimSpace(string(respBody))
		}
		return &APIError{StatusCode: resp.StatusCode, Info: info}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("daily: decode response: %w", err)
	}
	return nil
}
