package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	wm "writeoff_monitor"
)

// Sink delivers one batch payload per engine invocation.
// Delivery is at-least-once: overlapping invocations may resend a batch.
type Sink interface {
	Send(ctx context.Context, payload []wm.UnitEventSet) error
}

// encodePayload renders the batch exactly as it goes on the wire.
func encodePayload(payload []wm.UnitEventSet) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}
