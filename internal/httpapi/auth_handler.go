package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/internal/account"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type AuthHandler struct {
	accounts *account.Service
}

func NewAuthHandler(s *account.Service) *AuthHandler {
	return &AuthHandler{accounts: s}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("email, password and role are required"))
		return
	}
	u, err := h.accounts.Register(c.Request.Context(), in.Email, in.Password, in.Role)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful, check your email for the verification token",
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	})
}

// POST /auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var in struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("verification token required"))
		return
	}
	if err := h.accounts.Verify(c.Request.Context(), in.Token); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified, you can now log in"})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("email and password are required"))
		return
	}
	u, token, err := h.accounts.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	})
}
