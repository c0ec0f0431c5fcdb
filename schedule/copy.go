package schedule

import (
	"context"
	"fmt"
	"time"
)

// CopyDayTo replaces each target day's items with the source day's.
// Deliberately the opposite of ApplyTemplate: copy is an explicit "replace",
// template apply is a safety-checked "fill gap".
func (e *Editor) CopyDayTo(ctx context.Context, sourceDate string, targetDates []string) error {
	if len(targetDates) == 0 {
		return fmt.Errorf("no target dates")
	}
	for _, d := range targetDates {
		if d == sourceDate {
			return fmt.Errorf("cannot copy %s onto itself", sourceDate)
		}
	}
	if _, err := e.gw.CopyDayTo(ctx, sourceDate, targetDates); err != nil {
		return err
	}
	return e.reload(ctx)
}

// CopyWeek copies the window's current week onto the next, day by day.
func (e *Editor) CopyWeek(ctx context.Context, weekStart string) error {
	if _, err := time.Parse(time.DateOnly, weekStart); err != nil {
		return fmt.Errorf("invalid week start %q", weekStart)
	}
	if _, err := e.gw.CopyWeek(ctx, weekStart); err != nil {
		return err
	}
	return e.reload(ctx)
}
