package api

import (
	"fmt"
	"net/http"
	"time"

	"chefboard/models"
	"chefboard/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type scheduleResponse struct {
	Days      []models.DayMenu  `json:"days"`
	Templates []models.Template `json:"templates"`
}

func getSchedule(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	from := c.Query("from")
	to := c.Query("to")
	for _, d := range []string{from, to} {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			fail(c, http.StatusBadRequest, fmt.Errorf("invalid date %q", d))
			return
		}
	}
	days, templates, err := services.GetScheduleWindow(c.Request.Context(), seller, from, to)
	if err != nil {
		failErr(c, err)
		return
	}
	if days == nil {
		days = []models.DayMenu{}
	}
	if templates == nil {
		templates = []models.Template{}
	}
	ok(c, scheduleResponse{Days: days, Templates: templates})
}

func closeDay(c *gin.Context) { setDayClosed(c, true) }
func openDay(c *gin.Context)  { setDayClosed(c, false) }

func setDayClosed(c *gin.Context, closed bool) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	if err := services.SetDayClosed(c.Request.Context(), seller, c.Param("date"), closed); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"date": c.Param("date"), "is_closed": closed})
}

type notesRequest struct {
	Text string `json:"text"`
}

func setNotes(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := services.SetDayNotes(c.Request.Context(), seller, c.Param("date"), req.Text); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"date": c.Param("date")})
}

func addItem(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var draft models.ItemDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	item, err := services.AddItem(c.Request.Context(), seller, c.Param("date"), draft)
	if err != nil {
		// Validation failures come back before the store is touched.
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, item)
}

func editItem(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	item, err := services.EditItem(c.Request.Context(), seller, c.Param("date"), c.Param("itemID"), patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, item)
}

func deleteItem(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	if err := services.DeleteItem(c.Request.Context(), seller, c.Param("date"), c.Param("itemID")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("itemID")})
}

func toggleItemAvailable(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	item, err := services.ToggleItemAvailable(c.Request.Context(), seller, c.Param("date"), c.Param("itemID"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, item)
}

type bulkPriceRequest struct {
	Mode  string `json:"mode" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func bulkPrice(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req bulkPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid value %q", req.Value))
		return
	}
	n, err := services.BulkAdjustPrices(c.Request.Context(), seller, c.Param("date"), req.Mode, value)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, gin.H{"updated_count": n})
}

type copyDayRequest struct {
	Targets []string `json:"targets" binding:"required"`
}

func copyDay(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req copyDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	created, err := services.CopyDayTo(c.Request.Context(), seller, c.Param("date"), req.Targets)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"created": created})
}

type copyWeekRequest struct {
	WeekStart string `json:"week_start" binding:"required"`
}

func copyWeek(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req copyWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if _, err := time.Parse(time.DateOnly, req.WeekStart); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid week start %q", req.WeekStart))
		return
	}
	created, err := services.CopyWeek(c.Request.Context(), seller, req.WeekStart)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"created": created})
}

type saveTemplateRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func saveTemplate(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req saveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	tpl, err := services.SaveTemplate(c.Request.Context(), seller, req.Date, req.Name)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, tpl)
}

type applyTemplateRequest struct {
	Dates []string `json:"dates" binding:"required"`
}

func applyTemplate(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var req applyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	applied, skipped, err := services.ApplyTemplate(c.Request.Context(), seller, c.Param("templateID"), req.Dates)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"applied": applied, "skipped": skipped})
}

func deleteTemplate(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	if err := services.DeleteTemplate(c.Request.Context(), seller, c.Param("templateID")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("templateID")})
}
