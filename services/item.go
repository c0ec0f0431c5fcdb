package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chefboard/db"
	"chefboard/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrItemNotFound = errors.New("menu item not found")

type rowScanner interface {
	Scan(dest ...any) error
}

const itemColumns = `id, menu_date::text, position, name, price_cents, offer_price_cents,
	is_veg, is_available, stock_count, description, image_url,
	prep_time_minutes, serving_size, allergens, category_id, egg_option`

func scanItem(r rowScanner) (models.MenuItem, error) {
	var it models.MenuItem
	err := r.Scan(
		&it.ID, &it.Date, &it.Position, &it.Name, &it.PriceCents, &it.OfferCents,
		&it.IsVeg, &it.IsAvailable, &it.StockCount, &it.Description, &it.ImageURL,
		&it.PrepMinutes, &it.ServingSize, &it.Allergens, &it.CategoryID, &it.EggOption,
	)
	return it, err
}

func validateDraft(d models.ItemDraft) (priceCents int64, offerCents *int64, err error) {
	if strings.TrimSpace(d.Name) == "" {
		return 0, nil, fmt.Errorf("name is required")
	}
	priceCents, err = models.ParsePrice(d.Price)
	if err != nil {
		return 0, nil, err
	}
	if d.OfferPrice != "" {
		// Not validated against the list price; stored as given.
		c, err := models.ParsePrice(d.OfferPrice)
		if err != nil {
			return 0, nil, fmt.Errorf("offer %v", err)
		}
		offerCents = &c
	}
	if d.StockCount != nil && *d.StockCount < 0 {
		return 0, nil, fmt.Errorf("stock count must be >= 0")
	}
	if d.EggOption != "" && !models.ValidEggOption(d.EggOption) {
		return 0, nil, fmt.Errorf("invalid egg option: %s", d.EggOption)
	}
	return priceCents, offerCents, nil
}

// AddItem creates a MenuItem under the date's DayMenu, creating the DayMenu
// (open, no notes) if this is the first item ever added to that date.
func AddItem(ctx context.Context, sellerID, date string, draft models.ItemDraft) (*models.MenuItem, error) {
	priceCents, offerCents, err := validateDraft(draft)
	if err != nil {
		return nil, err
	}
	egg := draft.EggOption
	if egg == "" {
		egg = models.EggOptionNone
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO day_menus (seller_id, menu_date) VALUES ($1, $2::date)
		ON CONFLICT (seller_id, menu_date) DO NOTHING`,
		sellerID, date,
	); err != nil {
		return nil, fmt.Errorf("ensure day menu: %w", err)
	}

	id := uuid.NewString()
	row := tx.QueryRow(ctx, `
		INSERT INTO menu_items (
			id, seller_id, menu_date, position, name, price_cents, offer_price_cents,
			is_veg, stock_count, description, image_url, prep_time_minutes,
			serving_size, allergens, category_id, egg_option
		) VALUES (
			$1, $2, $3::date,
			COALESCE((SELECT MAX(position) + 1 FROM menu_items
				WHERE seller_id = $2 AND menu_date = $3::date), 0),
			$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING `+itemColumns,
		id, sellerID, date, strings.TrimSpace(draft.Name), priceCents, offerCents,
		draft.IsVeg, draft.StockCount, draft.Description, draft.ImageURL,
		draft.PrepMinutes, draft.ServingSize, draft.Allergens, draft.CategoryID, egg,
	)
	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &it, nil
}

// EditItem overwrites only the fields supplied in the patch.
func EditItem(ctx context.Context, sellerID, date, itemID string, patch models.ItemPatch) (*models.MenuItem, error) {
	sets := []string{"updated_at = now()"}
	args := []any{sellerID, date, itemID}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("name is required")
		}
		add("name", strings.TrimSpace(*patch.Name))
	}
	if patch.Price != nil {
		cents, err := models.ParsePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		add("price_cents", cents)
	}
	if patch.OfferPrice != nil {
		if *patch.OfferPrice == "" {
			add("offer_price_cents", nil)
		} else {
			cents, err := models.ParsePrice(*patch.OfferPrice)
			if err != nil {
				return nil, fmt.Errorf("offer %v", err)
			}
			add("offer_price_cents", cents)
		}
	}
	if patch.IsVeg != nil {
		add("is_veg", *patch.IsVeg)
	}
	if patch.StockCount != nil {
		if *patch.StockCount < 0 {
			return nil, fmt.Errorf("stock count must be >= 0")
		}
		add("stock_count", *patch.StockCount)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.PrepMinutes != nil {
		add("prep_time_minutes", *patch.PrepMinutes)
	}
	if patch.ServingSize != nil {
		add("serving_size", *patch.ServingSize)
	}
	if patch.Allergens != nil {
		add("allergens", *patch.Allergens)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	if patch.EggOption != nil {
		if !models.ValidEggOption(*patch.EggOption) {
			return nil, fmt.Errorf("invalid egg option: %s", *patch.EggOption)
		}
		add("egg_option", *patch.EggOption)
	}

	row := db.Pool.QueryRow(ctx, `
		UPDATE menu_items SET `+strings.Join(sets, ", ")+`
		WHERE seller_id = $1 AND menu_date = $2::date AND id = $3
		RETURNING `+itemColumns,
		args...,
	)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("edit item: %w", err)
	}
	return &it, nil
}

// DeleteItem removes the item. The DayMenu row stays even when it becomes
// empty; days are never deleted, only emptied.
func DeleteItem(ctx context.Context, sellerID, date, itemID string) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM menu_items
		WHERE seller_id = $1 AND menu_date = $2::date AND id = $3`,
		sellerID, date, itemID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ToggleItemAvailable flips the sold-out flag.
func ToggleItemAvailable(ctx context.Context, sellerID, date, itemID string) (*models.MenuItem, error) {
	row := db.Pool.QueryRow(ctx, `
		UPDATE menu_items SET is_available = NOT is_available, updated_at = now()
		WHERE seller_id = $1 AND menu_date = $2::date AND id = $3
		RETURNING `+itemColumns,
		sellerID, date, itemID,
	)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("toggle availability: %w", err)
	}
	return &it, nil
}
