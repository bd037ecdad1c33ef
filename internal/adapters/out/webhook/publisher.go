// Package webhook provides a best-effort event sink that posts order lifecycle
// events to a configured HTTP endpoint, one JSON document per event.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderboard/internal/core/domain/model/order"
)

const requestTimeout = 5 * time.Second

// Publisher delivers domain events over HTTP. Delivery is fire-and-forget:
// failures are logged and never propagate into the lifecycle engine, since the
// transitions the events describe have already committed.
type Publisher struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

// NewPublisher creates a webhook publisher posting to the given endpoint.
func NewPublisher(endpoint string, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		endpoint: endpoint,
		logger:   logger.With("component", "webhook_publisher"),
	}
}

type eventPayload struct {
	Event             string            `json:"event"`
	OrderID           string            `json:"order_id"`
	OwnerID           string            `json:"owner_id"`
	ItemType          string            `json:"item_type"`
	ItemAttributes    map[string]string `json:"item_attributes,omitempty"`
	Quantity          int               `json:"quantity"`
	PricePerUnit      float64           `json:"price_per_unit"`
	DeliveredQuantity int               `json:"delivered_quantity"`
	Status            string            `json:"status"`

	DelivererID string   `json:"deliverer_id,omitempty"`
	Units       int      `json:"units,omitempty"`
	Payment     *float64 `json:"payment,omitempty"`
	Refund      *float64 `json:"refund,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// Publish posts each event to the endpoint in order. Failures are logged per
// event and do not stop the rest of the batch.
func (p *Publisher) Publish(ctx context.Context, events ...order.DomainEvent) {
	for _, event := range events {
		payload, ok := p.payloadFor(event)
		if !ok {
			continue
		}

		if err := p.post(ctx, payload); err != nil {
			p.logger.WarnContext(ctx, "Failed to deliver event webhook",
				"event", payload.Event,
				"order_id", payload.OrderID,
				"error", err,
			)
		}
	}
}

func (p *Publisher) payloadFor(event order.DomainEvent) (eventPayload, bool) {
	base := func(o *order.Order) eventPayload {
		return eventPayload{
			Event:             event.EventName(),
			OrderID:           o.ID().String(),
			OwnerID:           o.OwnerID().String(),
			ItemType:          o.ItemSpec().Type(),
			ItemAttributes:    o.ItemSpec().Attributes(),
			Quantity:          o.Quantity(),
			PricePerUnit:      o.PricePerUnit(),
			DeliveredQuantity: o.DeliveredQuantity(),
			Status:            o.Status().String(),
			OccurredAt:        time.Now().UTC(),
		}
	}

	switch e := event.(type) {
	case order.CreatedEvent:
		return base(e.Order), true
	case order.DeliveredEvent:
		payload := base(e.Order)
		payload.DelivererID = e.Record.DelivererID().String()
		payload.Units = e.Record.Units()
		payment := e.Record.Payment()
		payload.Payment = &payment
		return payload, true
	case order.CompletedEvent:
		return base(e.Order), true
	case order.CancelledEvent:
		payload := base(e.Order)
		payload.Refund = &e.Refund
		return payload, true
	case order.ExpiredEvent:
		payload := base(e.Order)
		payload.Refund = &e.Refund
		return payload, true
	default:
		return eventPayload{}, false
	}
}

func (p *Publisher) post(ctx context.Context, payload eventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{StatusCode: resp.StatusCode}
	}

	return nil
}

type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook endpoint returned status %d", e.StatusCode)
}
