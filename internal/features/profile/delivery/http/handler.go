package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/validation"
	"ruya-backend/internal/features/profile/service"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/get-profile/:user_id", h.GetProfile)
	router.POST("/set-profile", h.SetProfile)
	router.POST("/set-premium", h.SetPremium)
}

type SetProfileRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	Choice          string `json:"choice"`
	Zodiac          string `json:"zodiac"`
	InterpreterType string `json:"interpreter_type"`
}

type SetPremiumRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	IsPremium *bool  `json:"is_premium" binding:"required"`
}

// GetProfile returns preferences and usage for a user. A never-seen user gets
// the defaults; the read alone creates no record.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")
	if err := validation.ValidateUserID(userID); err != nil {
		c.Error(apperrors.NewValidationError("user_id", err.Error()))
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SetProfile applies a partial preference update; only non-empty fields
// overwrite stored values.
func (h *ProfileHandler) SetProfile(c *gin.Context) {
	var req SetProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		c.Error(apperrors.NewValidationError("user_id", err.Error()))
		return
	}
	if err := validation.ValidateChoice(req.Choice); err != nil {
		c.Error(apperrors.NewValidationError("choice", err.Error()))
		return
	}
	if err := validation.ValidateZodiac(req.Zodiac); err != nil {
		c.Error(apperrors.NewValidationError("zodiac", err.Error()))
		return
	}

	if err := h.service.SetProfile(c.Request.Context(), req.UserID, req.Choice, req.Zodiac, req.InterpreterType); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetPremium flips the premium entitlement flag, creating the profile when
// absent. The lifetime usage counter is preserved either way.
func (h *ProfileHandler) SetPremium(c *gin.Context) {
	var req SetPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		c.Error(apperrors.NewValidationError("user_id", err.Error()))
		return
	}

	profile, err := h.service.SetPremium(c.Request.Context(), req.UserID, *req.IsPremium)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"is_premium": profile.IsPremium,
	})
}
