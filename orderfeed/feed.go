package orderfeed

import (
	"context"
	"fmt"
	"time"

	"chefboard/models"
)

// DefaultInterval is how often the feed refetches while the operator is
// watching the active-orders view.
const DefaultInterval = 15 * time.Second

// Fetcher is what the feed needs from the persistence side.
type Fetcher interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*models.Order, error)
}

// Alerter receives the single short notification when new work arrives.
type Alerter interface {
	Alert() error
}

// Feed keeps the operator's order list fresh and alerts on growth of the
// active-order count. The previous count lives on the instance, constructed
// on view entry and discarded on exit, so nothing leaks across sessions.
// The growth heuristic reacts to net increase only; it cannot tell
// "3 placed + 1 delivered" from "net +2", which is accepted.
type Feed struct {
	fetch    Fetcher
	alert    Alerter
	interval time.Duration

	// OnError, when set, receives poll errors from Run. Polling is
	// self-healing, so errors never stop the loop.
	OnError func(error)

	prev    int
	hasPrev bool // false until the first successful load; first load never alerts
	orders  []models.Order
}

func New(fetch Fetcher, alert Alerter, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Feed{fetch: fetch, alert: alert, interval: interval}
}

// Poll runs one fetch-compare-alert cycle. On fetch failure the last list
// and count are kept; the next tick retries from scratch.
func (f *Feed) Poll(ctx context.Context) error {
	orders, err := f.fetch.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("poll orders: %w", err)
	}

	active := 0
	for i := range orders {
		if orders[i].IsActive() {
			active++
		}
	}
	if f.hasPrev && active > f.prev && f.alert != nil {
		if err := f.alert.Alert(); err != nil && f.OnError != nil {
			f.OnError(fmt.Errorf("alert: %w", err))
		}
	}
	f.prev = active
	f.hasPrev = true
	f.orders = orders
	return nil
}

// Run polls once immediately, then on every interval tick until ctx is
// cancelled. Each poll is a single fetch-then-stop cycle; cancellation
// between ticks leaves nothing in flight.
func (f *Feed) Run(ctx context.Context) {
	if err := f.Poll(ctx); err != nil && f.OnError != nil {
		f.OnError(err)
	}
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.Poll(ctx); err != nil && f.OnError != nil {
				f.OnError(err)
			}
		}
	}
}

// Transition applies one status change and then re-polls, so the view
// reflects the store rather than an optimistic local mutation. Whether the
// requested status is legal is the store's call.
func (f *Feed) Transition(ctx context.Context, orderID int64, status string) error {
	if _, err := f.fetch.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	return f.Poll(ctx)
}

// Orders returns the last fetched list.
func (f *Feed) Orders() []models.Order {
	return f.orders
}

// Active returns the orders still needing attention, in fetch order.
func (f *Feed) Active() []models.Order {
	var out []models.Order
	for _, o := range f.orders {
		if o.IsActive() {
			out = append(out, o)
		}
	}
	return out
}

// ActiveCount returns the current active-order count.
func (f *Feed) ActiveCount() int {
	return len(f.Active())
}
