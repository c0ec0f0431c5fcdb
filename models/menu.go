package models

// Egg options for an item, mirroring the marketplace's dietary filter.
const (
	EggOptionNone    = "none"
	EggOptionEgg     = "egg"
	EggOptionEggless = "eggless"
	EggOptionBoth    = "both"
)

func ValidEggOption(s string) bool {
	switch s {
	case EggOptionNone, EggOptionEgg, EggOptionEggless, EggOptionBoth:
		return true
	}
	return false
}

// MenuItem is one purchasable dish on a specific day's menu.
type MenuItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Position    int    `json:"position"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	OfferCents  *int64 `json:"offer_cents,omitempty"` // not checked against PriceCents; stored as given
	IsVeg       bool   `json:"is_veg"`
	IsAvailable bool   `json:"is_available"` // sold-out toggle, independent of the day's IsClosed
	StockCount  *int   `json:"stock_count,omitempty"` // nil = unlimited
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	PrepMinutes int    `json:"prep_minutes,omitempty"`
	ServingSize string `json:"serving_size,omitempty"`
	Allergens   string `json:"allergens,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	EggOption   string `json:"egg_option,omitempty"`
}

// ItemDraft is the input for adding an item. Only Name and Price are
// mandatory; a draft copied from a catalog dish carries the full set.
type ItemDraft struct {
	Name        string `json:"name"`
	Price       string `json:"price"` // money string, e.g. "4.99"
	OfferPrice  string `json:"offer_price,omitempty"`
	IsVeg       bool   `json:"is_veg"`
	StockCount  *int   `json:"stock_count,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	PrepMinutes int    `json:"prep_minutes,omitempty"`
	ServingSize string `json:"serving_size,omitempty"`
	Allergens   string `json:"allergens,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	EggOption   string `json:"egg_option,omitempty"`
}

// ItemPatch is a partial update; nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Price       *string `json:"price,omitempty"`
	OfferPrice  *string `json:"offer_price,omitempty"` // empty string clears the offer
	IsVeg       *bool   `json:"is_veg,omitempty"`
	StockCount  *int    `json:"stock_count,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	PrepMinutes *int    `json:"prep_minutes,omitempty"`
	ServingSize *string `json:"serving_size,omitempty"`
	Allergens   *string `json:"allergens,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	EggOption   *string `json:"egg_option,omitempty"`
}

// DayMenu is one calendar day's offering for one seller. At most one per
// (seller, date). Closing a day hides it from ordering but keeps its items.
type DayMenu struct {
	Date       string     `json:"date"` // YYYY-MM-DD
	IsClosed   bool       `json:"is_closed"`
	Notes      string     `json:"notes,omitempty"`
	OrderCount int        `json:"order_count"` // server-computed, read-only
	Items      []MenuItem `json:"items"`
}

// Template is a named, date-independent snapshot of item definitions.
type Template struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// TemplateItem is a MenuItem minus its date-specific fields.
type TemplateItem struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	OfferCents  *int64 `json:"offer_cents,omitempty"`
	IsVeg       bool   `json:"is_veg"`
	StockCount  *int   `json:"stock_count,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	PrepMinutes int    `json:"prep_minutes,omitempty"`
	ServingSize string `json:"serving_size,omitempty"`
	Allergens   string `json:"allergens,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	EggOption   string `json:"egg_option,omitempty"`
}

// Bulk price adjustment modes.
const (
	BulkModePercentage = "percentage"
	BulkModeFixed      = "fixed"
)
