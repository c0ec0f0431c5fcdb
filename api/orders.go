package api

import (
	"fmt"
	"net/http"
	"strconv"

	"chefboard/models"
	"chefboard/services"

	"github.com/gin-gonic/gin"
)

func listOrders(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	orders, err := services.ListOrders(c.Request.Context(), seller)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, orders)
}

func createOrder(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	var input models.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	order, err := services.CreateOrder(c.Request.Context(), seller, input)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ok(c, order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatus(c *gin.Context) {
	seller, okSeller := sellerID(c)
	if !okSeller {
		return
	}
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid order id %q", c.Param("orderID")))
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid status: %s", req.Status))
		return
	}
	order, err := services.UpdateOrderStatus(c.Request.Context(), seller, orderID, req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, order)
}
