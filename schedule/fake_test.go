package schedule

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"chefboard/models"

	"github.com/shopspring/decimal"
)

// fakeGateway is an in-memory Gateway with the same semantics as the real
// store: implicit day creation, template skip-if-nonempty, copy overwrite.
type fakeGateway struct {
	days      map[string]*models.DayMenu
	templates map[string]*models.Template
	nextID    int

	getCalls  int
	failGet   bool
	failWrite bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		days:      map[string]*models.DayMenu{},
		templates: map[string]*models.Template{},
	}
}

func (f *fakeGateway) id() string {
	f.nextID++
	return "id-" + strconv.Itoa(f.nextID)
}

func (f *fakeGateway) day(date string) *models.DayMenu {
	if d, ok := f.days[date]; ok {
		return d
	}
	d := &models.DayMenu{Date: date, Items: []models.MenuItem{}}
	f.days[date] = d
	return d
}

func (f *fakeGateway) GetSchedule(_ context.Context, from, to string) ([]models.DayMenu, []models.Template, error) {
	f.getCalls++
	if f.failGet {
		return nil, nil, fmt.Errorf("store unreachable")
	}
	var days []models.DayMenu
	for date, d := range f.days {
		if date >= from && date <= to {
			days = append(days, *d)
		}
	}
	var templates []models.Template
	for _, t := range f.templates {
		templates = append(templates, *t)
	}
	return days, templates, nil
}

func (f *fakeGateway) SetDayClosed(_ context.Context, date string, closed bool) error {
	if f.failWrite {
		return fmt.Errorf("store unreachable")
	}
	f.day(date).IsClosed = closed
	return nil
}

func (f *fakeGateway) SetDayNotes(_ context.Context, date, text string) error {
	if f.failWrite {
		return fmt.Errorf("store unreachable")
	}
	f.day(date).Notes = text
	return nil
}

func (f *fakeGateway) AddItem(_ context.Context, date string, draft models.ItemDraft) (*models.MenuItem, error) {
	if f.failWrite {
		return nil, fmt.Errorf("store unreachable")
	}
	cents, err := models.ParsePrice(draft.Price)
	if err != nil {
		return nil, err
	}
	d := f.day(date)
	it := models.MenuItem{
		ID:          f.id(),
		Date:        date,
		Position:    len(d.Items),
		Name:        draft.Name,
		PriceCents:  cents,
		IsVeg:       draft.IsVeg,
		IsAvailable: true,
	}
	d.Items = append(d.Items, it)
	return &it, nil
}

func (f *fakeGateway) EditItem(_ context.Context, date, itemID string, patch models.ItemPatch) (*models.MenuItem, error) {
	if f.failWrite {
		return nil, fmt.Errorf("store unreachable")
	}
	d := f.day(date)
	for i := range d.Items {
		if d.Items[i].ID != itemID {
			continue
		}
		if patch.Name != nil {
			d.Items[i].Name = *patch.Name
		}
		if patch.Price != nil {
			cents, err := models.ParsePrice(*patch.Price)
			if err != nil {
				return nil, err
			}
			d.Items[i].PriceCents = cents
		}
		return &d.Items[i], nil
	}
	return nil, fmt.Errorf("menu item not found")
}

func (f *fakeGateway) DeleteItem(_ context.Context, date, itemID string) error {
	if f.failWrite {
		return fmt.Errorf("store unreachable")
	}
	d := f.day(date)
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("menu item not found")
}

func (f *fakeGateway) ToggleItemAvailable(_ context.Context, date, itemID string) (*models.MenuItem, error) {
	if f.failWrite {
		return nil, fmt.Errorf("store unreachable")
	}
	d := f.day(date)
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			d.Items[i].IsAvailable = !d.Items[i].IsAvailable
			return &d.Items[i], nil
		}
	}
	return nil, fmt.Errorf("menu item not found")
}

func (f *fakeGateway) BulkAdjustPrices(_ context.Context, date, mode string, value decimal.Decimal) (int, error) {
	if f.failWrite {
		return 0, fmt.Errorf("store unreachable")
	}
	d := f.day(date)
	next := make([]int64, len(d.Items))
	for i, it := range d.Items {
		if mode == models.BulkModePercentage {
			next[i] = models.ApplyPercent(it.PriceCents, value)
		} else {
			next[i] = models.ApplyFixed(it.PriceCents, value)
		}
		if next[i] < 0 {
			return 0, fmt.Errorf("adjustment makes %q negative", it.Name)
		}
	}
	for i := range d.Items {
		d.Items[i].PriceCents = next[i]
	}
	return len(d.Items), nil
}

func (f *fakeGateway) SaveTemplate(_ context.Context, date, name string) (*models.Template, error) {
	if f.failWrite {
		return nil, fmt.Errorf("store unreachable")
	}
	d := f.day(date)
	if len(d.Items) == 0 {
		return nil, fmt.Errorf("day has no items")
	}
	t := &models.Template{ID: f.id(), Name: name}
	for i, it := range d.Items {
		t.Items = append(t.Items, models.TemplateItem{
			Position:   i,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			IsVeg:      it.IsVeg,
		})
	}
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeGateway) ApplyTemplate(_ context.Context, templateID string, dates []string) ([]string, []string, error) {
	if f.failWrite {
		return nil, nil, fmt.Errorf("store unreachable")
	}
	t, ok := f.templates[templateID]
	if !ok {
		return nil, nil, fmt.Errorf("template not found")
	}
	applied, skipped := []string{}, []string{}
	for _, date := range dates {
		d := f.day(date)
		if len(d.Items) > 0 {
			skipped = append(skipped, date)
			continue
		}
		for _, ti := range t.Items {
			d.Items = append(d.Items, models.MenuItem{
				ID:          f.id(),
				Date:        date,
				Position:    ti.Position,
				Name:        ti.Name,
				PriceCents:  ti.PriceCents,
				IsVeg:       ti.IsVeg,
				IsAvailable: true,
			})
		}
		applied = append(applied, date)
	}
	return applied, skipped, nil
}

func (f *fakeGateway) DeleteTemplate(_ context.Context, templateID string) error {
	if f.failWrite {
		return fmt.Errorf("store unreachable")
	}
	if _, ok := f.templates[templateID]; !ok {
		return fmt.Errorf("template not found")
	}
	delete(f.templates, templateID)
	return nil
}

func (f *fakeGateway) CopyDayTo(_ context.Context, sourceDate string, targetDates []string) ([]string, error) {
	if f.failWrite {
		return nil, fmt.Errorf("store unreachable")
	}
	src := f.day(sourceDate)
	created := []string{}
	for _, target := range targetDates {
		d := f.day(target)
		d.Items = nil
		for i, it := range src.Items {
			copied := it
			copied.ID = f.id()
			copied.Date = target
			copied.Position = i
			d.Items = append(d.Items, copied)
		}
		created = append(created, target)
	}
	return created, nil
}

func (f *fakeGateway) CopyWeek(_ context.Context, weekStart string) (int, error) {
	if f.failWrite {
		return 0, fmt.Errorf("store unreachable")
	}
	start, err := time.Parse(time.DateOnly, weekStart)
	if err != nil {
		return 0, err
	}
	for i := 0; i < 7; i++ {
		source := start.AddDate(0, 0, i).Format(time.DateOnly)
		target := start.AddDate(0, 0, i+7).Format(time.DateOnly)
		if _, err := f.CopyDayTo(context.Background(), source, []string{target}); err != nil {
			return i, err
		}
	}
	return 7, nil
}

var _ Gateway = (*fakeGateway)(nil)

// fixedNow pins the store's clock for deterministic window math.
func fixedNow(date string) func() time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
