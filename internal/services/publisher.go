package services

import (
	"context"
	"log/slog"

	"finboard/internal/amqp"
)

// Publisher delivers change events. *amqp.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, e *amqp.ChangeEvent) error
}

// publish never fails the caller: the write already succeeded locally.
func publish(ctx context.Context, p Publisher, e *amqp.ChangeEvent) {
	if p == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping change event", "type", e.Type)
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"type", e.Type,
			"id", e.ID,
			"error", err)
	}
}
