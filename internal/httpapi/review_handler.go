package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/review"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type ReviewHandler struct {
	reviews *review.Service
}

func NewReviewHandler(s *review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: s}
}

// POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("booking_id and rating are required"))
		return
	}
	rv, err := h.reviews.Create(c.Request.Context(), in.BookingID, c.GetString("sub"), in.Rating, in.Comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// GET /reviews?tutorId=&page=&pageSize=
func (h *ReviewHandler) ListForTutor(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	out, err := h.reviews.ForTutor(c.Request.Context(), c.Query("tutorId"), int32(page), int32(size))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
