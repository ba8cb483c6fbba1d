// Package fcm delivers push messages over the FCM legacy HTTP API.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadcrm/internal/errors"
	"leadcrm/ports"
)

// Config holds FCM delivery settings
type Config struct {
	Endpoint  string
	ServerKey string
	Timeout   time.Duration
}

// Client sends data messages to single device tokens
type Client struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

// NewClient creates an FCM push sender
func NewClient(cfg Config) (*Client, error) {
	if cfg.ServerKey == "" {
		return nil, fmt.Errorf("missing FCM server key")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		serverKey:  cfg.ServerKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// fcmRequest is the legacy send payload: everything rides in the data
// block so the client app controls presentation.
type fcmRequest struct {
	To       string            `json:"to"`
	Data     map[string]string `json:"data"`
	Priority string            `json:"priority"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Send delivers one message to one device token
func (c *Client) Send(ctx context.Context, token string, msg ports.PushMessage) error {
	data := map[string]string{
		"title": msg.Title,
		"body":  msg.Body,
	}
	for k, v := range msg.Data {
		data[k] = v
	}

	payload, err := json.Marshal(fcmRequest{
		To:       token,
		Data:     data,
		Priority: "high",
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode push payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build push request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.ExternalServiceError("push", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.ExternalServiceError("push",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return errors.Wrap(err, "failed to decode push response")
	}
	if parsed.Failure > 0 && parsed.Success == 0 {
		return errors.ExternalServiceError("push", fmt.Errorf("delivery rejected for token"))
	}
	return nil
}
