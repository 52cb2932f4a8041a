package square

import "context"

// Repository is the write-once audit log of webhook deliveries.
type Repository interface {
	Record(ctx context.Context, e *Event) error
}
