package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// These tests cover the request-validation paths that never reach the
// database; the store-backed behavior is tested in the services package.

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path, seller, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if seller != "" {
		req.Header.Set(SellerHeader, seller)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response %q is not an envelope: %v", w.Body.String(), err)
	}
	return w, env
}

func TestMissingSellerHeaderIsRejected(t *testing.T) {
	r := testRouter()
	paths := []struct{ method, path string }{
		{http.MethodGet, "/schedule?from=2026-09-01&to=2026-09-14"},
		{http.MethodGet, "/orders"},
		{http.MethodPost, "/days/2026-09-01/close"},
	}
	for _, p := range paths {
		w, env := doRequest(t, r, p.method, p.path, "", "")
		if w.Code != http.StatusBadRequest || env.Success {
			t.Errorf("%s %s without seller: code=%d success=%v, want 400 failure", p.method, p.path, w.Code, env.Success)
		}
		if !strings.Contains(env.Error, SellerHeader) {
			t.Errorf("error %q should name the missing header", env.Error)
		}
	}
}

func TestInvalidDateParamIsRejected(t *testing.T) {
	r := testRouter()
	w, env := doRequest(t, r, http.MethodPost, "/days/not-a-date/close", "seller-1", "")
	if w.Code != http.StatusBadRequest || env.Success {
		t.Errorf("code=%d success=%v, want 400 failure", w.Code, env.Success)
	}
}

func TestScheduleRangeValidation(t *testing.T) {
	r := testRouter()
	w, _ := doRequest(t, r, http.MethodGet, "/schedule?from=garbage&to=2026-09-14", "seller-1", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad from date: code=%d, want 400", w.Code)
	}
}

func TestBulkPriceRequestValidation(t *testing.T) {
	r := testRouter()

	w, _ := doRequest(t, r, http.MethodPost, "/days/2026-09-01/bulk-price", "seller-1",
		`{"mode":"percentage"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing value: code=%d, want 400", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPost, "/days/2026-09-01/bulk-price", "seller-1",
		`{"mode":"percentage","value":"ten"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("garbage value: code=%d, want 400", w.Code)
	}

	w, env := doRequest(t, r, http.MethodPost, "/days/2026-09-01/bulk-price", "seller-1",
		`{"mode":"halve","value":"2"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown mode: code=%d, want 400", w.Code)
	}
	if !strings.Contains(env.Error, "mode") {
		t.Errorf("error %q should mention the mode", env.Error)
	}
}

func TestOrderStatusRequestValidation(t *testing.T) {
	r := testRouter()

	w, _ := doRequest(t, r, http.MethodPatch, "/orders/abc/status", "seller-1",
		`{"status":"accepted"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: code=%d, want 400", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPatch, "/orders/1/status", "seller-1", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing status: code=%d, want 400", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPatch, "/orders/1/status", "seller-1",
		`{"status":"vaporized"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status: code=%d, want 400", w.Code)
	}
}

func TestCopyWeekRequestValidation(t *testing.T) {
	r := testRouter()
	w, _ := doRequest(t, r, http.MethodPost, "/weeks/copy", "seller-1",
		`{"week_start":"31/08/2026"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad week start: code=%d, want 400", w.Code)
	}
}
