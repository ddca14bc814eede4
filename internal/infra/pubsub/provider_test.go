package pubsub

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newPublisherParams(t *testing.T, cfg *config.Config) PublisherParams {
	return PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: newDiscardLogger(),
	}
}

func TestNewEventPublisher(t *testing.T) {
	t.Run("disabled without provider", func(t *testing.T) {
		publisher, err := NewEventPublisher(newPublisherParams(t, &config.Config{}))
		require.NoError(t, err)

		assert.IsType(t, &disabledPublisher{}, publisher)
		assert.NoError(t, publisher.PublishOrderCommitted(context.Background(), &service.OrderCommittedEvent{OrderID: "o-1"}))
	})

	t.Run("async shipment needs a provider", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Checkout.AsyncShipment = true

		_, err := NewEventPublisher(newPublisherParams(t, cfg))
		assert.Error(t, err)
	})

	t.Run("local provider", func(t *testing.T) {
		cfg := &config.Config{PubSub: &config.PubSubConfig{
			Provider:      constants.PubSubProviderLocal,
			LocalEndpoint: "http://localhost:8081/push",
		}}

		publisher, err := NewEventPublisher(newPublisherParams(t, cfg))
		require.NoError(t, err)
		assert.NotNil(t, publisher)
	})

	t.Run("local provider without endpoint", func(t *testing.T) {
		cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}}

		_, err := NewEventPublisher(newPublisherParams(t, cfg))
		assert.Error(t, err)
	})

	t.Run("google provider without topic", func(t *testing.T) {
		cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}}

		_, err := NewEventPublisher(newPublisherParams(t, cfg))
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "kafka"}}

		_, err := NewEventPublisher(newPublisherParams(t, cfg))
		assert.Error(t, err)
	})
}
