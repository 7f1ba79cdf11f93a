// Package webhook turns platform order notifications into order upserts.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-webhooks/internal/order"
)

// Topic is the event-type tag of a delivery.
type Topic string

const (
	TopicOrdersCreate  Topic = "ORDERS_CREATE"
	TopicOrdersUpdated Topic = "ORDERS_UPDATED"
)

// ParseTopic maps the X-Shopify-Topic header form ("orders/create") to a Topic.
func ParseTopic(header string) Topic {
	return Topic(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(header), "/", "_")))
}

var ErrUnhandledTopic = errors.New("unhandled webhook topic")

// Event is one authenticated delivery.
type Event struct {
	Topic   Topic
	Shop    string
	Payload json.RawMessage
}

// Outcome says what Handle did with an accepted event.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeIgnored Outcome = "ignored"
)

type Controller struct {
	repo order.Repository
	log  *zap.Logger
}

func NewController(repo order.Repository, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{repo: repo, log: log}
}

// Handle dispatches ev by topic. Unknown topics fail with ErrUnhandledTopic
// and malformed payloads with order.ErrInvalidPayload, both before any store
// call. Store errors are returned unchanged for the caller's redelivery policy.
func (c *Controller) Handle(ctx context.Context, ev Event) (Outcome, error) {
	log := c.log.With(zap.String("topic", string(ev.Topic)), zap.String("shop", ev.Shop))
	log.Info("received webhook")

	switch ev.Topic {
	case TopicOrdersCreate:
		log.Debug("webhook payload", zap.ByteString("payload", ev.Payload))
		return c.handleCreate(ctx, log, ev.Payload)
	case TopicOrdersUpdated:
		log.Debug("webhook payload", zap.ByteString("payload", ev.Payload))
		return c.handleUpdated(ctx, log, ev.Payload)
	default:
		log.Warn("unhandled webhook topic")
		return "", ErrUnhandledTopic
	}
}

// handleCreate treats a repeated create as an update of the same order.
func (c *Controller) handleCreate(ctx context.Context, log *zap.Logger, raw json.RawMessage) (Outcome, error) {
	p, err := decode(raw)
	if err != nil {
		return "", err
	}
	data, err := order.Normalize(p)
	if err != nil {
		return "", err
	}

	o, inserted, err := c.repo.Upsert(ctx, data)
	if err != nil {
		return "", err
	}
	if inserted {
		log.Info("order created", zap.String("order_id", o.OrderID), zap.Int64("id", o.ID))
		return OutcomeCreated, nil
	}
	log.Info("order updated from create event", zap.String("order_id", o.OrderID), zap.Int64("id", o.ID))
	return OutcomeUpdated, nil
}

// handleUpdated never creates: an update for an unknown order is dropped.
func (c *Controller) handleUpdated(ctx context.Context, log *zap.Logger, raw json.RawMessage) (Outcome, error) {
	p, err := decode(raw)
	if err != nil {
		return "", err
	}
	orderID := p.ID.String()
	if orderID == "" {
		return "", fmt.Errorf("%w: missing id", order.ErrInvalidPayload)
	}

	existing, err := c.repo.FindByOrderID(ctx, orderID)
	if errors.Is(err, order.ErrNotFound) {
		log.Info("order not found, skipping update", zap.String("order_id", orderID))
		return OutcomeIgnored, nil
	}
	if err != nil {
		return "", err
	}

	data, err := order.Normalize(p)
	if err != nil {
		return "", err
	}
	if _, err := c.repo.Update(ctx, existing.ID, data.Patch()); err != nil {
		return "", err
	}
	log.Info("order updated", zap.String("order_id", orderID), zap.Int64("id", existing.ID))
	return OutcomeUpdated, nil
}

func decode(raw json.RawMessage) (order.Payload, error) {
	var p order.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return order.Payload{}, fmt.Errorf("%w: %v", order.ErrInvalidPayload, err)
	}
	return p, nil
}
