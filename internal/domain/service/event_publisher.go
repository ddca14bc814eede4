package service

import (
	"context"
)

// OrderCommittedEvent is published once an order and its stock
// reservations are committed.
type OrderCommittedEvent struct {
	RequestID string `json:"request_id,omitempty"`
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	PublishOrderCommitted(ctx context.Context, event *OrderCommittedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
