// Package alert delivers low-stock notifications to an external webhook.
package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the outbound alert operation used by the scheduler.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert is the JSON payload posted to the webhook.
type LowStockAlert struct {
	Threshold int       `json:"threshold"`
	Items     []string  `json:"items"`
	At        time.Time `json:"at"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client posting to the provided URL.
func NewClient(url string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
	}
}

// SendLowStockAlert posts the alert payload and fails on any non-2xx
// response.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, alert LowStockAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
