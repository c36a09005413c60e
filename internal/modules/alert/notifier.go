package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Digest is one shop's low-stock message.
type Digest struct {
	ShopID   uuid.UUID `json:"shop_id"`
	ShopName string    `json:"shop_name"`
	Text     string    `json:"text"`
}

// Notifier delivers a digest.
type Notifier interface {
	Notify(ctx context.Context, d Digest) error
}

// WebhookNotifier posts each digest as JSON to a fixed URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	return &WebhookNotifier{client: client, url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, d Digest) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(d).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// LogNotifier writes digests to the log. Used when no webhook is configured.
type LogNotifier struct{ log *zap.Logger }

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, d Digest) error {
	n.log.Info("low stock digest",
		zap.String("shop_id", d.ShopID.String()),
		zap.String("shop_name", d.ShopName),
		zap.String("text", d.Text))
	return nil
}
