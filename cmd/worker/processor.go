package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/smartorder/ordersync/internal/orders"
)

// Processor consumes order-placed events and performs payment capture:
// the order moves CONFIRMED -> PROCESSING -> COMPLETED and its invoice
// PENDING -> PAID. Conditional transitions make redelivered messages and
// competing workers harmless.
type Processor struct {
	store  *orders.Store
	logger *zap.Logger
}

// NewProcessor creates a worker processor.
func NewProcessor(store *orders.Store, logger *zap.Logger) *Processor {
	return &Processor{store: store, logger: logger}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. After too many attempts the
			// message lands in the DLQ.
			p.logger.Error("worker error", zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg OrderPlacedEvent
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.logger.Info("received order-placed event",
		zap.Int64("order_id", msg.OrderID),
		zap.String("correlation_id", msg.CorrelationID))

	order, err := p.store.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen: the event is published after commit
		return fmt.Errorf("order not found: %d", msg.OrderID)
	}

	// Claim the order: CONFIRMED -> PROCESSING (idempotent)
	err = p.store.UpdateStatus(ctx, msg.OrderID, orders.StatusConfirmed, orders.StatusProcessing)
	if errors.Is(err, orders.ErrStatusMismatch) {
		// Competing worker or redelivery; decide from the current status.
		current, getErr := p.store.Get(ctx, msg.OrderID)
		if getErr != nil {
			return fmt.Errorf("failed to re-fetch order: %w", getErr)
		}
		switch current.Status {
		case orders.StatusCompleted:
			p.logger.Info("order already completed", zap.Int64("order_id", msg.OrderID))
			return nil
		case orders.StatusProcessing:
			p.logger.Info("duplicate event for in-flight order", zap.Int64("order_id", msg.OrderID))
			return nil
		case orders.StatusFailed:
			return fmt.Errorf("order %d is already FAILED", msg.OrderID)
		default:
			return fmt.Errorf("unexpected status for order %d: %s", msg.OrderID, current.Status)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to update status to PROCESSING: %w", err)
	}

	// Capture payment on the invoice. An already-paid invoice is fine: a
	// previous attempt got this far before failing the final transition.
	err = p.store.MarkInvoicePaid(ctx, msg.OrderID)
	if errors.Is(err, orders.ErrStatusMismatch) {
		invoice, getErr := p.store.GetInvoice(ctx, msg.OrderID)
		if getErr != nil {
			return fmt.Errorf("failed to fetch invoice: %w", getErr)
		}
		if invoice == nil {
			// placement is atomic; an order without an invoice is corruption
			return fmt.Errorf("order %d has no invoice", msg.OrderID)
		}
		p.logger.Info("invoice already paid", zap.Int64("order_id", msg.OrderID))
	} else if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if err := p.store.UpdateStatus(ctx, msg.OrderID, orders.StatusProcessing, orders.StatusCompleted); err != nil {
		return fmt.Errorf("failed to update status to COMPLETED: %w", err)
	}

	p.logger.Info("order completed", zap.Int64("order_id", msg.OrderID))
	return nil
}
