package services

import (
	"context"
	"fmt"

	"chefboard/db"
	"chefboard/models"

	"github.com/shopspring/decimal"
)

// GetScheduleWindow returns every DayMenu in [from, to] (inclusive, ISO
// dates) plus all of the seller's templates. Days without a row are simply
// absent; the client projects them as empty open days.
func GetScheduleWindow(ctx context.Context, sellerID, from, to string) ([]models.DayMenu, []models.Template, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT d.menu_date::text, d.is_closed, d.notes,
			(SELECT COUNT(*) FROM orders o
			 WHERE o.seller_id = d.seller_id AND o.menu_date = d.menu_date)::int
		FROM day_menus d
		WHERE d.seller_id = $1 AND d.menu_date BETWEEN $2::date AND $3::date
		ORDER BY d.menu_date`,
		sellerID, from, to,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	var days []models.DayMenu
	byDate := map[string]int{}
	for rows.Next() {
		var d models.DayMenu
		if err := rows.Scan(&d.Date, &d.IsClosed, &d.Notes, &d.OrderCount); err != nil {
			return nil, nil, err
		}
		d.Items = []models.MenuItem{}
		byDate[d.Date] = len(days)
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	items, err := listItemsInRange(ctx, sellerID, from, to)
	if err != nil {
		return nil, nil, err
	}
	for _, it := range items {
		if i, ok := byDate[it.Date]; ok {
			days[i].Items = append(days[i].Items, it)
		}
	}

	templates, err := ListTemplates(ctx, sellerID)
	if err != nil {
		return nil, nil, err
	}
	return days, templates, nil
}

func listItemsInRange(ctx context.Context, sellerID, from, to string) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, menu_date::text, position, name, price_cents, offer_price_cents,
			is_veg, is_available, stock_count, description, image_url,
			prep_time_minutes, serving_size, allergens, category_id, egg_option
		FROM menu_items
		WHERE seller_id = $1 AND menu_date BETWEEN $2::date AND $3::date
		ORDER BY menu_date, position, id`,
		sellerID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetDayClosed toggles the day's closed flag, creating the DayMenu row if
// this date has never been touched. Items are untouched either way.
func SetDayClosed(ctx context.Context, sellerID, date string, closed bool) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO day_menus (seller_id, menu_date, is_closed)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (seller_id, menu_date) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			updated_at = now()`,
		sellerID, date, closed,
	)
	if err != nil {
		return fmt.Errorf("set day closed: %w", err)
	}
	return nil
}

// SetDayNotes overwrites the day's free-text notes.
func SetDayNotes(ctx context.Context, sellerID, date, text string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO day_menus (seller_id, menu_date, notes)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (seller_id, menu_date) DO UPDATE SET
			notes = EXCLUDED.notes,
			updated_at = now()`,
		sellerID, date, text,
	)
	if err != nil {
		return fmt.Errorf("set day notes: %w", err)
	}
	return nil
}

// BulkAdjustPrices recomputes every item price on the given day in a single
// transaction. A result below zero aborts the whole batch; partial updates
// never commit.
func BulkAdjustPrices(ctx context.Context, sellerID, date, mode string, value decimal.Decimal) (int, error) {
	if mode != models.BulkModePercentage && mode != models.BulkModeFixed {
		return 0, fmt.Errorf("invalid bulk price mode: %s", mode)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id, name, price_cents FROM menu_items
		WHERE seller_id = $1 AND menu_date = $2::date
		ORDER BY position, id`,
		sellerID, date,
	)
	if err != nil {
		return 0, err
	}
	type row struct {
		id    string
		name  string
		cents int64
	}
	var updates []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.name, &r.cents); err != nil {
			rows.Close()
			return 0, err
		}
		updates = append(updates, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for i := range updates {
		var next int64
		if mode == models.BulkModePercentage {
			next = models.ApplyPercent(updates[i].cents, value)
		} else {
			next = models.ApplyFixed(updates[i].cents, value)
		}
		if next < 0 {
			return 0, fmt.Errorf("adjustment makes %q negative (%s)", updates[i].name, models.FormatPrice(next))
		}
		updates[i].cents = next
	}
	for _, u := range updates {
		if _, err := tx.Exec(ctx, `
			UPDATE menu_items SET price_cents = $1, updated_at = now() WHERE id = $2`,
			u.cents, u.id,
		); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(updates), nil
}
