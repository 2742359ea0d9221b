package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/validation"
	"ruya-backend/internal/features/dream/service"
)

type DreamHandler struct {
	service service.DreamService
}

func NewDreamHandler(service service.DreamService) *DreamHandler {
	return &DreamHandler{
		service: service,
	}
}

func (h *DreamHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/analiz-et", h.Analyze)
	router.GET("/gecmis", h.History)
	router.DELETE("/ruya-sil/:id", h.Delete)
}

type AnalyzeRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	DreamText string `json:"dream_text" binding:"required"`
}

// Analyze interprets a dream and persists the result. Non-premium users past
// the lifetime limit get the quota error before any external call is made.
func (h *DreamHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid request body"))
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		c.Error(apperrors.NewValidationError("user_id", err.Error()))
		return
	}
	if err := validation.ValidateDreamText(req.DreamText); err != nil {
		c.Error(apperrors.NewValidationError("dream_text", err.Error()))
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), req.UserID, req.DreamText)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// History lists the caller-supplied user's past dreams.
func (h *DreamHandler) History(c *gin.Context) {
	userID := c.Query("user_id")
	if err := validation.ValidateUserID(userID); err != nil {
		c.Error(apperrors.NewValidationError("user_id", err.Error()))
		return
	}

	dreams, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dreams)
}

// Delete removes a dream by id. There is no ownership check; any caller who
// knows the id may delete it.
func (h *DreamHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rüya silindi"})
}
