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

var ErrTemplateNotFound = errors.New("template not found")

// SaveTemplate snapshots the day's current items into a new named template.
// Item ids and dates are stripped; only the definitions survive.
func SaveTemplate(ctx context.Context, sellerID, date, name string) (*models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM menu_items WHERE seller_id = $1 AND menu_date = $2::date`,
		sellerID, date,
	).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("day %s has no items to save", date)
	}

	id := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO templates (id, seller_id, name) VALUES ($1, $2, $3)`,
		id, sellerID, name,
	); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, fmt.Errorf("template %q already exists", name)
		}
		return nil, fmt.Errorf("save template: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO template_items (
			template_id, position, name, price_cents, offer_price_cents, is_veg,
			stock_count, description, image_url, prep_time_minutes, serving_size,
			allergens, category_id, egg_option
		)
		SELECT $1, position, name, price_cents, offer_price_cents, is_veg,
			stock_count, description, image_url, prep_time_minutes, serving_size,
			allergens, category_id, egg_option
		FROM menu_items
		WHERE seller_id = $2 AND menu_date = $3::date`,
		id, sellerID, date,
	); err != nil {
		return nil, fmt.Errorf("save template items: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return GetTemplate(ctx, sellerID, id)
}

// ApplyTemplate instantiates the template's items onto each empty target
// date. Dates that already have items are skipped and reported; skipping is
// the safety rule that protects existing menus from accidental overwrite.
func ApplyTemplate(ctx context.Context, sellerID, templateID string, dates []string) (applied, skipped []string, err error) {
	tpl, err := GetTemplate(ctx, sellerID, templateID)
	if err != nil {
		return nil, nil, err
	}
	applied = []string{}
	skipped = []string{}

	for _, date := range dates {
		ok, err := applyTemplateToDate(ctx, sellerID, tpl, date)
		if err != nil {
			return applied, skipped, fmt.Errorf("apply template to %s: %w", date, err)
		}
		if ok {
			applied = append(applied, date)
		} else {
			skipped = append(skipped, date)
		}
	}
	return applied, skipped, nil
}

func applyTemplateToDate(ctx context.Context, sellerID string, tpl *models.Template, date string) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM menu_items WHERE seller_id = $1 AND menu_date = $2::date`,
		sellerID, date,
	).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO day_menus (seller_id, menu_date) VALUES ($1, $2::date)
		ON CONFLICT (seller_id, menu_date) DO NOTHING`,
		sellerID, date,
	); err != nil {
		return false, err
	}
	for _, it := range tpl.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_items (
				id, seller_id, menu_date, position, name, price_cents,
				offer_price_cents, is_veg, stock_count, description, image_url,
				prep_time_minutes, serving_size, allergens, category_id, egg_option
			) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			uuid.NewString(), sellerID, date, it.Position, it.Name, it.PriceCents,
			it.OfferCents, it.IsVeg, it.StockCount, it.Description, it.ImageURL,
			it.PrepMinutes, it.ServingSize, it.Allergens, it.CategoryID, it.EggOption,
		); err != nil {
			return false, err
		}
	}
	return true, tx.Commit(ctx)
}

// DeleteTemplate removes the template. Days previously filled from it keep
// their items; there are no back-references.
func DeleteTemplate(ctx context.Context, sellerID, templateID string) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM templates WHERE id = $1 AND seller_id = $2`,
		templateID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func GetTemplate(ctx context.Context, sellerID, templateID string) (*models.Template, error) {
	var t models.Template
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name FROM templates WHERE id = $1 AND seller_id = $2`,
		templateID, sellerID,
	).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	t.Items, err = listTemplateItems(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ListTemplates(ctx context.Context, sellerID string) ([]models.Template, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name FROM templates WHERE seller_id = $1 ORDER BY name`,
		sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].Items, err = listTemplateItems(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func listTemplateItems(ctx context.Context, templateID string) ([]models.TemplateItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT position, name, price_cents, offer_price_cents, is_veg, stock_count,
			description, image_url, prep_time_minutes, serving_size, allergens,
			category_id, egg_option
		FROM template_items WHERE template_id = $1 ORDER BY position`,
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.TemplateItem{}
	for rows.Next() {
		var it models.TemplateItem
		if err := rows.Scan(
			&it.Position, &it.Name, &it.PriceCents, &it.OfferCents, &it.IsVeg,
			&it.StockCount, &it.Description, &it.ImageURL, &it.PrepMinutes,
			&it.ServingSize, &it.Allergens, &it.CategoryID, &it.EggOption,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
