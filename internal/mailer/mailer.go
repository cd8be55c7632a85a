// Package mailer posts the order confirmation to the transactional-email
// function. The call is fire-and-forget: a failure is logged and never
// blocks or fails the checkout that triggered it.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/config"
	"github.com/trottiparts/trottiparts-api/internal/domain"
)

type OrderMailer struct {
	webhookURL string
	client     *http.Client
}

func NewOrderMailer(conf *config.MailerConfig) *OrderMailer {
	timeout := 10 * time.Second
	if conf.TimeoutSecs > 0 {
		timeout = time.Duration(conf.TimeoutSecs) * time.Second
	}

	return &OrderMailer{
		webhookURL: conf.OrderWebhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type orderLine struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type orderPayload struct {
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Lines         []orderLine `json:"lines"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TaxCents      int64       `json:"tax_cents"`
	TotalCents    int64       `json:"total_cents"`
}

// SendOrderConfirmation runs in its own goroutine at checkout. The context
// is detached from the request on purpose: the email outlives the response.
func (m *OrderMailer) SendOrderConfirmation(order domain.Order) {
	if m.webhookURL == "" {
		return
	}

	lines := make([]orderLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = orderLine{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}

	payload := orderPayload{
		OrderNumber:   order.Number,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Lines:         lines,
		SubtotalCents: order.SubtotalCents,
		TaxCents:      order.TaxCents,
		TotalCents:    order.TotalCents,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("order confirmation payload", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, m.webhookURL, bytes.NewReader(body))
	if err != nil {
		zap.L().Error("order confirmation request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		zap.L().Error("order confirmation send failed",
			zap.String("order", order.Number), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		zap.L().Error("order confirmation rejected",
			zap.String("order", order.Number),
			zap.String("status", fmt.Sprintf("%d", resp.StatusCode)))
		return
	}

	zap.L().Info("order confirmation sent", zap.String("order", order.Number))
}
