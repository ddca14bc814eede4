package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

const (
	localSubscription   = "projects/local/subscriptions/fulfillment-sub"
	localPublishTimeout = 30 * time.Second
	localMaxAttempts    = 3
	localRetryBackoff   = 200 * time.Millisecond
)

// localHTTPPublisher posts push envelopes straight to the fulfillment worker.
// A 5xx from the worker is redelivered, as Pub/Sub would.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	backoff    time.Duration
}

// PushMessage is the envelope Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPublishTimeout},
		logger:     logger,
		backoff:    localRetryBackoff,
	}
}

func (p *localHTTPPublisher) PublishOrderCommitted(ctx context.Context, event *service.OrderCommittedEvent) error {
	data, attributes, err := orderCommittedMessage(event)
	if err != nil {
		return err
	}

	var envelope PushMessage
	envelope.Subscription = localSubscription
	envelope.Message.Data = base64.StdEncoding.EncodeToString(data)
	envelope.Message.Attributes = attributes
	envelope.Message.MessageID = uuid.NewString()
	envelope.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "failed to encode push envelope")
	}

	for attempt := 1; ; attempt++ {
		status, err := p.push(ctx, body, event.RequestID)
		if err == nil && status < http.StatusInternalServerError {
			if status >= http.StatusMultipleChoices {
				return errors.Errorf("worker rejected order %s with status %d", event.OrderID, status)
			}
			p.logger.InfoContext(ctx, "Order event delivered to local worker",
				slog.String("order_id", event.OrderID),
				slog.String("message_id", envelope.Message.MessageID),
				slog.Int("attempt", attempt),
			)

			return nil
		}
		if err == nil {
			err = errors.Errorf("worker returned status %d", status)
		}
		if attempt == localMaxAttempts {
			return errors.Wrapf(err, "order %s not delivered after %d attempts", event.OrderID, attempt)
		}

		p.logger.WarnContext(ctx, "Local worker push failed, redelivering",
			slog.String("order_id", event.OrderID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(p.backoff * time.Duration(attempt)):
		}
	}
}

func (p *localHTTPPublisher) push(ctx context.Context, body []byte, requestID string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

func (p *localHTTPPublisher) Close() error {
	return nil
}
