package schedule

import (
	"context"

	"chefboard/models"

	"github.com/shopspring/decimal"
)

// Gateway is what the planner needs from the persistence side. The seller is
// bound inside the implementation; every call is one request/response and
// the caller awaits it before issuing the next.
type Gateway interface {
	GetSchedule(ctx context.Context, from, to string) ([]models.DayMenu, []models.Template, error)
	SetDayClosed(ctx context.Context, date string, closed bool) error
	SetDayNotes(ctx context.Context, date, text string) error
	AddItem(ctx context.Context, date string, draft models.ItemDraft) (*models.MenuItem, error)
	EditItem(ctx context.Context, date, itemID string, patch models.ItemPatch) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, date, itemID string) error
	ToggleItemAvailable(ctx context.Context, date, itemID string) (*models.MenuItem, error)
	BulkAdjustPrices(ctx context.Context, date, mode string, value decimal.Decimal) (int, error)
	SaveTemplate(ctx context.Context, date, name string) (*models.Template, error)
	ApplyTemplate(ctx context.Context, templateID string, dates []string) (applied, skipped []string, err error)
	DeleteTemplate(ctx context.Context, templateID string) error
	CopyDayTo(ctx context.Context, sourceDate string, targetDates []string) ([]string, error)
	CopyWeek(ctx context.Context, weekStart string) (int, error)
}
