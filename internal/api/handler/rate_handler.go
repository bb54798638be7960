package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// RateHandler serves the public conversion-rate endpoint.
type RateHandler struct {
	rateSvc service.RateService
}

// NewRateHandler creates a RateHandler.
func NewRateHandler(rateSvc service.RateService) *RateHandler {
	return &RateHandler{rateSvc: rateSvc}
}

// Conversion returns the current conversion rate for pricing display.
// GET /api/v1/rates/conversion
func (h *RateHandler) Conversion(c *gin.Context) {
	result, err := h.rateSvc.Conversion(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrRateLookup) {
			response.Error(c, http.StatusBadGateway, 16001, "conversion rate unavailable")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
