package services

import (
	"context"
	"fmt"
	"time"

	"chefboard/db"

	"github.com/google/uuid"
)

// CopyDayTo replaces each target date's items wholesale with copies of the
// source date's items. Unlike template apply, copy always overwrites: it is
// the operator's explicit "replace this day" action.
func CopyDayTo(ctx context.Context, sellerID, sourceDate string, targetDates []string) ([]string, error) {
	created := []string{}
	for _, target := range targetDates {
		if target == sourceDate {
			continue
		}
		if err := copyDay(ctx, sellerID, sourceDate, target); err != nil {
			return created, fmt.Errorf("copy %s to %s: %w", sourceDate, target, err)
		}
		created = append(created, target)
	}
	return created, nil
}

func copyDay(ctx context.Context, sellerID, sourceDate, targetDate string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO day_menus (seller_id, menu_date) VALUES ($1, $2::date)
		ON CONFLICT (seller_id, menu_date) DO NOTHING`,
		sellerID, targetDate,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM menu_items WHERE seller_id = $1 AND menu_date = $2::date`,
		sellerID, targetDate,
	); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `
		SELECT position, name, price_cents, offer_price_cents, is_veg, is_available,
			stock_count, description, image_url, prep_time_minutes, serving_size,
			allergens, category_id, egg_option
		FROM menu_items
		WHERE seller_id = $1 AND menu_date = $2::date
		ORDER BY position, id`,
		sellerID, sourceDate,
	)
	if err != nil {
		return err
	}
	type srcItem struct {
		position    int
		name        string
		priceCents  int64
		offerCents  *int64
		isVeg       bool
		isAvailable bool
		stockCount  *int
		description string
		imageURL    string
		prepMinutes int
		servingSize string
		allergens   string
		categoryID  string
		eggOption   string
	}
	var src []srcItem
	for rows.Next() {
		var s srcItem
		if err := rows.Scan(
			&s.position, &s.name, &s.priceCents, &s.offerCents, &s.isVeg,
			&s.isAvailable, &s.stockCount, &s.description, &s.imageURL,
			&s.prepMinutes, &s.servingSize, &s.allergens, &s.categoryID, &s.eggOption,
		); err != nil {
			rows.Close()
			return err
		}
		src = append(src, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, s := range src {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_items (
				id, seller_id, menu_date, position, name, price_cents,
				offer_price_cents, is_veg, is_available, stock_count, description,
				image_url, prep_time_minutes, serving_size, allergens, category_id,
				egg_option
			) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			uuid.NewString(), sellerID, targetDate, s.position, s.name, s.priceCents,
			s.offerCents, s.isVeg, s.isAvailable, s.stockCount, s.description,
			s.imageURL, s.prepMinutes, s.servingSize, s.allergens, s.categoryID,
			s.eggOption,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// CopyWeek copies each day of the week starting at weekStart onto the
// corresponding day of the following week, as 7 independent day copies with
// the same overwrite semantics as CopyDayTo.
func CopyWeek(ctx context.Context, sellerID, weekStart string) (int, error) {
	start, err := time.Parse(time.DateOnly, weekStart)
	if err != nil {
		return 0, fmt.Errorf("invalid week start %q", weekStart)
	}
	created := 0
	for i := 0; i < 7; i++ {
		source := start.AddDate(0, 0, i).Format(time.DateOnly)
		target := start.AddDate(0, 0, i+7).Format(time.DateOnly)
		if err := copyDay(ctx, sellerID, source, target); err != nil {
			return created, fmt.Errorf("copy week day %s: %w", source, err)
		}
		created++
	}
	return created, nil
}
