package pubsub

import (
	"encoding/json"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// orderCommittedMessage is the payload and attributes shared by both
// publishers. The worker routes on event_type and logs under request_id.
func orderCommittedMessage(event *service.OrderCommittedEvent) ([]byte, map[string]string, error) {
	if event == nil || event.OrderID == "" {
		return nil, nil, errors.New("order committed event needs an order id")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode order committed event")
	}

	attributes := map[string]string{
		"event_type": constants.EventOrderCommitted,
		"order_id":   event.OrderID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return data, attributes, nil
}
