package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/account"
	"github.com/you/tutor-marketplace/internal/booking"
	"github.com/you/tutor-marketplace/internal/listing"
	"github.com/you/tutor-marketplace/internal/review"
)

type Services struct {
	Accounts *account.Service
	Listings *listing.Service
	Bookings *booking.Service
	Reviews  *review.Service
}

// NewRouter builds the full route table. Shared between cmd/api and the
// handler tests.
func NewRouter(s Services) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a := NewAuthHandler(s.Accounts)
	r.POST("/auth/register", a.Register)
	r.POST("/auth/verify", a.Verify)
	r.POST("/auth/login", a.Login)

	ph := NewProfileHandler(s.Accounts)
	me := r.Group("/profiles/me")
	me.Use(JWTAuth())
	me.GET("", ph.GetMe)
	me.PATCH("", ph.UpdateMe)
	r.GET("/profiles/:userId", ph.GetByID)

	lh := NewListingHandler(s.Listings)
	r.GET("/listings", lh.Search)
	r.GET("/listings/:id", lh.Get)
	tutor := r.Group("/listings")
	tutor.Use(JWTAuth(), RequireRole(string(account.RoleTutor)))
	tutor.POST("", lh.Create)
	tutor.PATCH("/:id", lh.Update)

	bh := NewBookingHandler(s.Bookings)
	secured := r.Group("")
	secured.Use(JWTAuth())
	{
		secured.POST("/bookings", bh.Create)
		secured.GET("/bookings", bh.List)
		secured.GET("/bookings/:id", bh.Get)
		secured.PUT("/bookings/:id/accept", bh.Accept)
		secured.PUT("/bookings/:id/cancel", bh.Cancel)
		secured.PUT("/bookings/:id/complete", bh.Complete)

		rh := NewReviewHandler(s.Reviews)
		secured.POST("/reviews", rh.Create)
		secured.GET("/reviews", rh.ListForTutor)
	}

	return r
}
