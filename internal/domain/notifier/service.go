package notifier

import "context"

// Notifier delivers leave lifecycle events. Delivery is best effort: a
// failed or dropped notification never fails the operation that emitted it.
type Notifier interface {
	Notify(ctx context.Context, event Event)
	Close()
}
