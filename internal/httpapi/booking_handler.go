package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/booking"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(s *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: s}
}

// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		ListingID string    `json:"listing_id" binding:"required"`
		StartTime time.Time `json:"start_time" binding:"required"` // RFC3339
		EndTime   time.Time `json:"end_time" binding:"required"`   // RFC3339
		Note      string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("listing_id, start_time and end_time are required (RFC3339)"))
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), c.GetString("sub"), in.ListingID, in.StartTime, in.EndTime, in.Note)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /bookings?role=&status=
func (h *BookingHandler) List(c *gin.Context) {
	role := strings.ToUpper(c.DefaultQuery("role", c.GetString("role")))
	out, err := h.bookings.List(c.Request.Context(), c.GetString("sub"), role, strings.ToUpper(c.Query("status")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"), c.GetString("sub"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /bookings/:id/accept (tutor only)
func (h *BookingHandler) Accept(c *gin.Context) {
	b, err := h.bookings.Accept(c.Request.Context(), c.Param("id"), c.GetString("sub"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /bookings/:id/cancel (either participant)
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"), c.GetString("sub"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /bookings/:id/complete (tutor only, idempotent)
func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.bookings.Complete(c.Request.Context(), c.Param("id"), c.GetString("sub"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
