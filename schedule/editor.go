package schedule

import (
	"context"
	"fmt"
	"strings"

	"chefboard/models"

	"github.com/shopspring/decimal"
)

// Editor mutates single days through the gateway. Every operation follows
// the same shape: validate locally, write, then reload the whole window so
// the view is always the store's truth, never an optimistic guess.
type Editor struct {
	store *Store
	gw    Gateway
}

func NewEditor(store *Store, gw Gateway) *Editor {
	return &Editor{store: store, gw: gw}
}

// reload refetches the window after a successful write. The write has
// already landed, so a reload failure is reported without undoing anything;
// the operator sees a stale view until the next action or retry.
func (e *Editor) reload(ctx context.Context) error {
	if err := e.store.LoadWindow(ctx); err != nil {
		return fmt.Errorf("saved, but refreshing the view failed: %w", err)
	}
	return nil
}

// AddItem validates the draft locally (no network call on bad input) and
// creates the item, creating the DayMenu implicitly on first add.
func (e *Editor) AddItem(ctx context.Context, date string, draft models.ItemDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := models.ParsePrice(draft.Price); err != nil {
		return err
	}
	if _, err := e.gw.AddItem(ctx, date, draft); err != nil {
		return err
	}
	return e.reload(ctx)
}

func (e *Editor) EditItem(ctx context.Context, date, itemID string, patch models.ItemPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if patch.Price != nil {
		if _, err := models.ParsePrice(*patch.Price); err != nil {
			return err
		}
	}
	if _, err := e.gw.EditItem(ctx, date, itemID, patch); err != nil {
		return err
	}
	return e.reload(ctx)
}

func (e *Editor) DeleteItem(ctx context.Context, date, itemID string) error {
	if err := e.gw.DeleteItem(ctx, date, itemID); err != nil {
		return err
	}
	return e.reload(ctx)
}

// ToggleAvailability flips the item's sold-out flag without touching the
// listing itself.
func (e *Editor) ToggleAvailability(ctx context.Context, date, itemID string) error {
	if _, err := e.gw.ToggleItemAvailable(ctx, date, itemID); err != nil {
		return err
	}
	return e.reload(ctx)
}

// ToggleDayClosed flips the whole day's availability, independent of
// item-level sold-out flags. Items survive either direction.
func (e *Editor) ToggleDayClosed(ctx context.Context, date string) error {
	closed := e.store.Day(date).IsClosed
	if err := e.gw.SetDayClosed(ctx, date, !closed); err != nil {
		return err
	}
	return e.reload(ctx)
}

func (e *Editor) SetNotes(ctx context.Context, date, text string) error {
	if err := e.gw.SetDayNotes(ctx, date, text); err != nil {
		return err
	}
	return e.reload(ctx)
}

// BulkAdjustPrices adjusts every price on the day in one request; the
// gateway applies it atomically or not at all.
func (e *Editor) BulkAdjustPrices(ctx context.Context, date, mode string, value decimal.Decimal) (int, error) {
	if mode != models.BulkModePercentage && mode != models.BulkModeFixed {
		return 0, fmt.Errorf("invalid bulk price mode: %s", mode)
	}
	n, err := e.gw.BulkAdjustPrices(ctx, date, mode, value)
	if err != nil {
		return 0, err
	}
	return n, e.reload(ctx)
}
