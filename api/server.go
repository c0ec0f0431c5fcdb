// Package api exposes the persistence gateway over HTTP. Every route is
// seller-scoped via the X-Seller-ID header and wrapped in the
// success/data/error envelope.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SellerHeader carries the authenticated seller's id. Real authentication
// is an upstream collaborator; the gateway only scopes by it.
const SellerHeader = "X-Seller-ID"

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/schedule", getSchedule)

	days := r.Group("/days/:date", requireDate)
	{
		days.POST("/close", closeDay)
		days.POST("/open", openDay)
		days.POST("/notes", setNotes)
		days.POST("/items", addItem)
		days.PATCH("/items/:itemID", editItem)
		days.DELETE("/items/:itemID", deleteItem)
		days.PATCH("/items/:itemID/availability", toggleItemAvailable)
		days.POST("/bulk-price", bulkPrice)
		days.POST("/copy", copyDay)
	}

	r.POST("/weeks/copy", copyWeek)

	templates := r.Group("/templates")
	{
		templates.POST("", saveTemplate)
		templates.POST("/:templateID/apply", applyTemplate)
		templates.DELETE("/:templateID", deleteTemplate)
	}

	orders := r.Group("/orders")
	{
		orders.GET("", listOrders)
		orders.POST("", createOrder)
		orders.PATCH("/:orderID/status", updateOrderStatus)
	}

	return r
}

func sellerID(c *gin.Context) (string, bool) {
	id := c.GetHeader(SellerHeader)
	if id == "" {
		fail(c, http.StatusBadRequest, fmt.Errorf("missing %s header", SellerHeader))
		return "", false
	}
	return id, true
}

// requireDate rejects malformed :date params once for the whole group.
func requireDate(c *gin.Context) {
	if _, err := time.Parse(time.DateOnly, c.Param("date")); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid date %q", c.Param("date")))
		c.Abort()
		return
	}
	c.Next()
}
