package audit

import "context"

// Store is an append-only sink for audit events. Implementations: in-memory
// (tests, single-node dev) and Kafka (durable fan-out).
type Store interface {
	Append(ctx context.Context, event Event) error
}
