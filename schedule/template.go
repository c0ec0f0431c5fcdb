package schedule

import (
	"context"
	"fmt"
	"strings"
)

// SaveAsTemplate snapshots a day's current items under a reusable name.
func (e *Editor) SaveAsTemplate(ctx context.Context, date, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("template name is required")
	}
	if len(e.store.Day(date).Items) == 0 {
		return fmt.Errorf("day %s has no items to save", date)
	}
	if _, err := e.gw.SaveTemplate(ctx, date, name); err != nil {
		return err
	}
	return e.reload(ctx)
}

// ApplyTemplate fills each empty target date from the template. Dates that
// already have items are skipped and returned so the operator is told,
// not silently ignored.
func (e *Editor) ApplyTemplate(ctx context.Context, templateID string, dates []string) (applied, skipped []string, err error) {
	if len(dates) == 0 {
		return nil, nil, fmt.Errorf("no target dates")
	}
	applied, skipped, err = e.gw.ApplyTemplate(ctx, templateID, dates)
	if err != nil {
		return applied, skipped, err
	}
	return applied, skipped, e.reload(ctx)
}

// DeleteTemplate removes the template; days filled from it are unaffected.
func (e *Editor) DeleteTemplate(ctx context.Context, templateID string) error {
	if err := e.gw.DeleteTemplate(ctx, templateID); err != nil {
		return err
	}
	return e.reload(ctx)
}
