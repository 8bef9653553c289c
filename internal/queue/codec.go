package queue

import (
	"encoding/json"
	"fmt"

	"github.com/familylists/familylists-go/models"
)

// encodeQueue and decodeQueue form the explicit serialization boundary of the
// queue's durability contract, kept as a pure function pair so the round-trip
// is testable without any storage backend.

func encodeQueue(items []models.PendingMutation) ([]byte, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode mutation queue: %w", err)
	}
	return payload, nil
}

func decodeQueue(payload []byte) ([]models.PendingMutation, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var items []models.PendingMutation
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode mutation queue: %w", err)
	}
	return items, nil
}
