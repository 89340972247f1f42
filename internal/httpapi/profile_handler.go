package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/account"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type ProfileHandler struct {
	accounts *account.Service
}

func NewProfileHandler(s *account.Service) *ProfileHandler {
	return &ProfileHandler{accounts: s}
}

// GET /profiles/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	v, err := h.accounts.GetProfile(c.Request.Context(), c.GetString("sub"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// PATCH /profiles/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var in struct {
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		University *string `json:"university"`
		Major      *string `json:"major"`
		Year       *string `json:"year"`
		Bio        *string `json:"bio"`
		AvatarURL  *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("malformed profile body"))
		return
	}
	v, err := h.accounts.UpdateProfile(c.Request.Context(), c.GetString("sub"), account.ProfileUpdate{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		University: in.University,
		Major:      in.Major,
		Year:       in.Year,
		Bio:        in.Bio,
		AvatarURL:  in.AvatarURL,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// GET /profiles/:userId (public)
func (h *ProfileHandler) GetByID(c *gin.Context) {
	v, err := h.accounts.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
