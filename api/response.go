package api

import (
	"errors"
	"net/http"

	"chefboard/services"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every response: success flag, payload,
// error text. Clients treat success=false with any HTTP status uniformly.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, Envelope{Success: false, Error: err.Error()})
}

// failErr maps service errors onto statuses. Anything unrecognized is a
// store-side failure.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrIllegalTransition):
		fail(c, http.StatusConflict, err)
	default:
		fail(c, http.StatusInternalServerError, err)
	}
}
