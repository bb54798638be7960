package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// NumberHandler serves the allocation administration endpoints.
type NumberHandler struct {
	numberSvc service.NumberService
}

// NewNumberHandler creates a NumberHandler.
func NewNumberHandler(numberSvc service.NumberService) *NumberHandler {
	return &NumberHandler{numberSvc: numberSvc}
}

// List returns a page of allocations, optionally filtered by raffle.
// GET /api/v1/numbers?raffle_id=1
func (h *NumberHandler) List(c *gin.Context) {
	var req dto.ListNumbersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, total, err := h.numberSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, result, total, req.GetPage(), req.GetPageSize())
}

// Delete frees one allocated number.
// DELETE /api/v1/numbers/:id
func (h *NumberHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.numberSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNumberNotFound) {
			response.NotFound(c, 15001, "raffle number not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
