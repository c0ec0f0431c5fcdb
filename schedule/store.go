package schedule

import (
	"context"
	"fmt"
	"time"

	"chefboard/models"
)

// WindowDays is the rolling planning horizon: the current week plus the next.
const WindowDays = 14

// WeekStart returns the most recent Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

// Store holds the 14-day window of DayMenu records and the current
// selection. It is owned by one operator session and is not safe for
// concurrent use; every mutation path goes write-then-LoadWindow.
type Store struct {
	gw  Gateway
	now func() time.Time

	weekStart time.Time
	days      map[string]models.DayMenu
	templates []models.Template
	selected  string
	loaded    bool
}

func NewStore(gw Gateway) *Store {
	return &Store{gw: gw, now: time.Now}
}

// LoadWindow refetches [weekStart, weekStart+13] and replaces the window
// wholesale. On failure the previous window is kept untouched; a stale view
// beats a partial one.
func (s *Store) LoadWindow(ctx context.Context) error {
	ws := WeekStart(s.now())
	from := ws.Format(time.DateOnly)
	to := ws.AddDate(0, 0, WindowDays-1).Format(time.DateOnly)

	days, templates, err := s.gw.GetSchedule(ctx, from, to)
	if err != nil {
		return fmt.Errorf("load schedule window: %w", err)
	}

	fresh := make(map[string]models.DayMenu, len(days))
	for _, d := range days {
		fresh[d.Date] = d
	}
	s.weekStart = ws
	s.days = fresh
	s.templates = templates
	s.loaded = true
	if s.selected == "" {
		s.selected = s.now().Format(time.DateOnly)
	}
	return nil
}

// Loaded reports whether a window has ever been installed.
func (s *Store) Loaded() bool { return s.loaded }

// Dates returns the window's 14 consecutive dates, record or not.
func (s *Store) Dates() []string {
	out := make([]string, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		out = append(out, s.weekStart.AddDate(0, 0, i).Format(time.DateOnly))
	}
	return out
}

// Day returns the window's view of a date. A date with no record projects
// as an empty, open day; this is a read-side projection, never a write.
func (s *Store) Day(date string) models.DayMenu {
	if d, ok := s.days[date]; ok {
		return d
	}
	return models.DayMenu{Date: date, Items: []models.MenuItem{}}
}

// SelectDate moves the current selection. Selecting a date with no record
// is fine; it shows as empty and open.
func (s *Store) SelectDate(date string) {
	s.selected = date
}

// Selected returns the currently selected day's projection.
func (s *Store) Selected() models.DayMenu {
	return s.Day(s.selected)
}

// SelectedDate returns the currently selected date string.
func (s *Store) SelectedDate() string { return s.selected }

// Templates returns the seller's templates as of the last load.
func (s *Store) Templates() []models.Template {
	return s.templates
}
