// Package client talks to the gateway API over HTTP. It implements both the
// planner's Gateway and the order feed's Fetcher, bound to one seller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"chefboard/api"
	"chefboard/models"

	"github.com/shopspring/decimal"
)

type Client struct {
	baseURL  string
	sellerID string
	http     *http.Client
}

func New(baseURL, sellerID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sellerID: sellerID,
		http:     http.DefaultClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do issues one request and decodes the envelope into out (when non-nil).
// A success=false envelope becomes an error carrying the server's message,
// whatever the HTTP status was.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.SellerHeader, c.sellerID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if !env.Success {
		if env.Error == "" {
			env.Error = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, env.Error)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) GetSchedule(ctx context.Context, from, to string) ([]models.DayMenu, []models.Template, error) {
	var out struct {
		Days      []models.DayMenu  `json:"days"`
		Templates []models.Template `json:"templates"`
	}
	q := url.Values{"from": {from}, "to": {to}}
	if err := c.do(ctx, http.MethodGet, "/schedule?"+q.Encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Days, out.Templates, nil
}

func (c *Client) SetDayClosed(ctx context.Context, date string, closed bool) error {
	action := "close"
	if !closed {
		action = "open"
	}
	return c.do(ctx, http.MethodPost, "/days/"+date+"/"+action, nil, nil)
}

func (c *Client) SetDayNotes(ctx context.Context, date, text string) error {
	return c.do(ctx, http.MethodPost, "/days/"+date+"/notes", map[string]string{"text": text}, nil)
}

func (c *Client) AddItem(ctx context.Context, date string, draft models.ItemDraft) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/days/"+date+"/items", draft, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) EditItem(ctx context.Context, date, itemID string, patch models.ItemPatch) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPatch, "/days/"+date+"/items/"+itemID, patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, date, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/days/"+date+"/items/"+itemID, nil, nil)
}

func (c *Client) ToggleItemAvailable(ctx context.Context, date, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPatch, "/days/"+date+"/items/"+itemID+"/availability", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) BulkAdjustPrices(ctx context.Context, date, mode string, value decimal.Decimal) (int, error) {
	var out struct {
		UpdatedCount int `json:"updated_count"`
	}
	body := map[string]string{"mode": mode, "value": value.String()}
	if err := c.do(ctx, http.MethodPost, "/days/"+date+"/bulk-price", body, &out); err != nil {
		return 0, err
	}
	return out.UpdatedCount, nil
}

func (c *Client) SaveTemplate(ctx context.Context, date, name string) (*models.Template, error) {
	var tpl models.Template
	body := map[string]string{"date": date, "name": name}
	if err := c.do(ctx, http.MethodPost, "/templates", body, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (c *Client) ApplyTemplate(ctx context.Context, templateID string, dates []string) ([]string, []string, error) {
	var out struct {
		Applied []string `json:"applied"`
		Skipped []string `json:"skipped"`
	}
	body := map[string][]string{"dates": dates}
	if err := c.do(ctx, http.MethodPost, "/templates/"+templateID+"/apply", body, &out); err != nil {
		return nil, nil, err
	}
	return out.Applied, out.Skipped, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, templateID string) error {
	return c.do(ctx, http.MethodDelete, "/templates/"+templateID, nil, nil)
}

func (c *Client) CopyDayTo(ctx context.Context, sourceDate string, targetDates []string) ([]string, error) {
	var out struct {
		Created []string `json:"created"`
	}
	body := map[string][]string{"targets": targetDates}
	if err := c.do(ctx, http.MethodPost, "/days/"+sourceDate+"/copy", body, &out); err != nil {
		return nil, err
	}
	return out.Created, nil
}

func (c *Client) CopyWeek(ctx context.Context, weekStart string) (int, error) {
	var out struct {
		Created int `json:"created"`
	}
	body := map[string]string{"week_start": weekStart}
	if err := c.do(ctx, http.MethodPost, "/weeks/copy", body, &out); err != nil {
		return 0, err
	}
	return out.Created, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	var order models.Order
	body := map[string]string{"status": status}
	path := "/orders/" + strconv.FormatInt(orderID, 10) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
