// Package gateway holds clients for external services.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"viewing-scheduler/internal/pkg/config"
	"viewing-scheduler/internal/pkg/errs"
)

// MessagingClient delivers customer-facing texts through the messaging
// provider's HTTP API. It implements the notify.Messenger port.
type MessagingClient struct {
	baseURL string
	apiKey  string
	sender  string
	client  *http.Client
}

func NewMessagingClient(cfg config.MessagingConfig) *MessagingClient {
	return &MessagingClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type sendTextRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (c *MessagingClient) SendText(ctx context.Context, phone, body string) error {
	payload, err := json.Marshal(sendTextRequest{From: c.sender, To: phone, Body: body})
	if err != nil {
		return errs.Wrap(err, "failed to encode message payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build message request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "message request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.New(fmt.Sprintf("messaging provider returned %d: %s", resp.StatusCode, string(detail)))
	}
	return nil
}
