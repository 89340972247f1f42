package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/listing"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type ListingHandler struct {
	listings *listing.Service
}

func NewListingHandler(s *listing.Service) *ListingHandler {
	return &ListingHandler{listings: s}
}

// POST /listings (tutor only)
func (h *ListingHandler) Create(c *gin.Context) {
	var in struct {
		Title       string `json:"title" binding:"required"`
		Subject     string `json:"subject" binding:"required"`
		CourseCode  string `json:"course_code"`
		HourlyRate  int64  `json:"hourly_rate" binding:"required"`
		Description string `json:"description"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("title, subject and hourly_rate are required"))
		return
	}
	l, err := h.listings.Create(c.Request.Context(), c.GetString("sub"), listing.CreateInput{
		Title:       in.Title,
		Subject:     in.Subject,
		CourseCode:  in.CourseCode,
		HourlyRate:  in.HourlyRate,
		Description: in.Description,
		Location:    in.Location,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PATCH /listings/:id (owner only)
func (h *ListingHandler) Update(c *gin.Context) {
	var in struct {
		HourlyRate  *int64  `json:"hourly_rate"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("malformed listing body"))
		return
	}
	l, err := h.listings.Update(c.Request.Context(), c.Param("id"), c.GetString("sub"), listing.UpdateInput{
		HourlyRate:  in.HourlyRate,
		Description: in.Description,
		Location:    in.Location,
		Active:      in.Active,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// GET /listings?query=&page=&page_size= (public search)
func (h *ListingHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if page < 1 {
		page = 1
	}
	out, total, err := h.listings.Search(c.Request.Context(), c.Query("query"), int32(page-1), int32(size))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "listings": out})
}

// GET /listings/:id (public)
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
