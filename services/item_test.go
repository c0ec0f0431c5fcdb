package services

import (
	"context"
	"testing"

	"chefboard/db"
	"chefboard/models"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.ItemDraft
		wantErr bool
	}{
		{"minimal", models.ItemDraft{Name: "Dal Tadka", Price: "4.99"}, false},
		{"zero price", models.ItemDraft{Name: "Water", Price: "0"}, false},
		{"empty name", models.ItemDraft{Name: "", Price: "4.99"}, true},
		{"whitespace name", models.ItemDraft{Name: "   ", Price: "4.99"}, true},
		{"negative price", models.ItemDraft{Name: "Dal", Price: "-1"}, true},
		{"garbage price", models.ItemDraft{Name: "Dal", Price: "free"}, true},
		{"bad offer", models.ItemDraft{Name: "Dal", Price: "4.99", OfferPrice: "x"}, true},
		{"bad egg option", models.ItemDraft{Name: "Dal", Price: "4.99", EggOption: "scrambled"}, true},
		{"good egg option", models.ItemDraft{Name: "Dal", Price: "4.99", EggOption: "eggless"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := validateDraft(tt.draft)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDraft(%+v) err = %v, wantErr %v", tt.draft, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDraftNegativeStock(t *testing.T) {
	stock := -1
	_, _, err := validateDraft(models.ItemDraft{Name: "Dal", Price: "1", StockCount: &stock})
	if err == nil {
		t.Error("negative stock should be rejected")
	}
}

func TestEditItemRejectsBadPatchLocally(t *testing.T) {
	// Validation happens before any store call, so a nil pool is fine here.
	empty := ""
	if _, err := EditItem(context.Background(), "s1", "2026-01-05", "x", models.ItemPatch{Name: &empty}); err == nil {
		t.Error("empty name patch should be rejected")
	}
	bad := "not-a-price"
	if _, err := EditItem(context.Background(), "s1", "2026-01-05", "x", models.ItemPatch{Price: &bad}); err == nil {
		t.Error("bad price patch should be rejected")
	}
}

// Integration tests below need a real database; they skip without one,
// mirroring how the rest of this package is tested in CI.

func TestItemCRUD_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping item integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping item integration test: no DB pool")
	}
	ctx := context.Background()
	const seller = "test-seller-items"
	const date = "2030-01-07"
	defer cleanupSeller(t, seller)

	// Scenario: adding to a date that has never existed creates an open day
	// with one item.
	it, err := AddItem(ctx, seller, date, models.ItemDraft{Name: "Dal Tadka", Price: "4.99", IsVeg: true})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if it.PriceCents != 499 || !it.IsAvailable {
		t.Errorf("added item = %+v, want 499 cents and available", it)
	}

	days, _, err := GetScheduleWindow(ctx, seller, date, date)
	if err != nil {
		t.Fatalf("GetScheduleWindow: %v", err)
	}
	if len(days) != 1 || len(days[0].Items) != 1 || days[0].IsClosed {
		t.Fatalf("after add: days = %+v, want one open day with one item", days)
	}

	newName := "Dal Fry"
	newPrice := "5.49"
	edited, err := EditItem(ctx, seller, date, it.ID, models.ItemPatch{Name: &newName, Price: &newPrice})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if edited.Name != "Dal Fry" || edited.PriceCents != 549 {
		t.Errorf("edited = %+v", edited)
	}
	if !edited.IsVeg {
		t.Error("edit must not clobber fields outside the patch")
	}

	toggled, err := ToggleItemAvailable(ctx, seller, date, it.ID)
	if err != nil {
		t.Fatalf("ToggleItemAvailable: %v", err)
	}
	if toggled.IsAvailable {
		t.Error("toggle should have marked the item sold out")
	}

	if err := DeleteItem(ctx, seller, date, it.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	// The DayMenu survives empty.
	days, _, err = GetScheduleWindow(ctx, seller, date, date)
	if err != nil {
		t.Fatalf("GetScheduleWindow after delete: %v", err)
	}
	if len(days) != 1 || len(days[0].Items) != 0 {
		t.Errorf("after delete: days = %+v, want one empty day", days)
	}

	if err := DeleteItem(ctx, seller, date, it.ID); err == nil {
		t.Error("deleting a missing item should fail")
	}
}

func TestDayCloseReopenKeepsItems_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping: no DB pool")
	}
	ctx := context.Background()
	const seller = "test-seller-close"
	const date = "2030-01-08"
	defer cleanupSeller(t, seller)

	for _, name := range []string{"Dal", "Rice", "Naan"} {
		if _, err := AddItem(ctx, seller, date, models.ItemDraft{Name: name, Price: "2.00"}); err != nil {
			t.Fatalf("AddItem %s: %v", name, err)
		}
	}
	checkDay := func(wantClosed bool) {
		t.Helper()
		days, _, err := GetScheduleWindow(ctx, seller, date, date)
		if err != nil {
			t.Fatalf("GetScheduleWindow: %v", err)
		}
		if len(days) != 1 {
			t.Fatalf("want one day, got %d", len(days))
		}
		if days[0].IsClosed != wantClosed || len(days[0].Items) != 3 {
			t.Errorf("day = closed=%v items=%d, want closed=%v items=3",
				days[0].IsClosed, len(days[0].Items), wantClosed)
		}
	}
	if err := SetDayClosed(ctx, seller, date, true); err != nil {
		t.Fatalf("close: %v", err)
	}
	checkDay(true)
	if err := SetDayClosed(ctx, seller, date, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	checkDay(false)

	if err := SetDayNotes(ctx, seller, date, "festival menu"); err != nil {
		t.Fatalf("notes: %v", err)
	}
}

func TestBulkAdjustPrices_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping: no DB pool")
	}
	ctx := context.Background()
	const seller = "test-seller-bulk"
	const date = "2030-01-09"
	defer cleanupSeller(t, seller)

	if _, err := AddItem(ctx, seller, date, models.ItemDraft{Name: "A", Price: "10.00"}); err != nil {
		t.Fatal(err)
	}
	if _, err := AddItem(ctx, seller, date, models.ItemDraft{Name: "B", Price: "20.00"}); err != nil {
		t.Fatal(err)
	}

	prices := func() []int64 {
		t.Helper()
		days, _, err := GetScheduleWindow(ctx, seller, date, date)
		if err != nil {
			t.Fatalf("GetScheduleWindow: %v", err)
		}
		var out []int64
		for _, it := range days[0].Items {
			out = append(out, it.PriceCents)
		}
		return out
	}

	n, err := BulkAdjustPrices(ctx, seller, date, models.BulkModePercentage, dec("10"))
	if err != nil {
		t.Fatalf("percentage: %v", err)
	}
	if n != 2 {
		t.Errorf("updated %d items, want 2", n)
	}
	got := prices()
	if got[0] != 1100 || got[1] != 2200 {
		t.Errorf("after +10%%: %v, want [1100 2200]", got)
	}

	if _, err := BulkAdjustPrices(ctx, seller, date, models.BulkModeFixed, dec("-2")); err != nil {
		t.Fatalf("fixed: %v", err)
	}
	got = prices()
	if got[0] != 900 || got[1] != 2000 {
		t.Errorf("after -2.00: %v, want [900 2000]", got)
	}

	// A negative result anywhere must fail the whole batch and write nothing.
	if _, err := BulkAdjustPrices(ctx, seller, date, models.BulkModeFixed, dec("-15")); err == nil {
		t.Error("batch producing a negative price should fail")
	}
	got = prices()
	if got[0] != 900 || got[1] != 2000 {
		t.Errorf("failed batch must not change prices: %v", got)
	}
}
