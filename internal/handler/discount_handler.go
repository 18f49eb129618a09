package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/middleware"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
	"github.com/sinapsiscode/cursos-exam-backend/internal/validator"
)

// redemptionEvent is queued for the stats worker after a successful redeem.
type redemptionEvent struct {
	Code       string    `json:"code"`
	UserID     string    `json:"user_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// DiscountHandler serves discount code validation and redemption for the
// checkout UI.
type DiscountHandler struct {
	discounts *service.DiscountService
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(discounts *service.DiscountService, rdb *redis.Client, log zerolog.Logger) *DiscountHandler {
	return &DiscountHandler{
		discounts: discounts,
		rdb:       rdb,
		log:       log.With().Str("component", "discount_handler").Logger(),
	}
}

// ValidateCode godoc
// POST /api/v1/discounts/validate
// Checks a code without consuming it.
func (h *DiscountHandler) ValidateCode(c *gin.Context) {
	var req model.ValidateCodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.discounts.Validate(c.Request.Context(), req.Code)
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"validation": result})
}

// RedeemCode godoc
// POST /api/v1/discounts/redeem
// Consumes a code for the authenticated user. On success a redemption event
// is queued so the stats snapshot refreshes promptly.
func (h *DiscountHandler) RedeemCode(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ValidateCodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.discounts.Redeem(c.Request.Context(), req.Code, claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}

	if result.Valid {
		h.queueRedemptionEvent(c, req.Code, claims.UserID)
	}

	response.Success(c, http.StatusOK, gin.H{"redemption": result})
}

// GetMyDiscounts godoc
// GET /api/v1/discounts/me
func (h *DiscountHandler) GetMyDiscounts(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	discounts, err := h.discounts.UserDiscounts(c.Request.Context(), claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discounts": discounts})
}

// queueRedemptionEvent pushes to the worker queue. Failures are logged and
// swallowed: the snapshot still refreshes on its timer.
func (h *DiscountHandler) queueRedemptionEvent(c *gin.Context, code, userID string) {
	payload, err := json.Marshal(redemptionEvent{
		Code:       code,
		UserID:     userID,
		RedeemedAt: time.Now(),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal redemption event")
		return
	}
	if err := h.rdb.RPush(c.Request.Context(), config.WorkerKey.RedemptionEventsQueue, payload).Err(); err != nil {
		h.log.Warn().Err(err).Str("code", code).Msg("Failed to queue redemption event")
	}
}
