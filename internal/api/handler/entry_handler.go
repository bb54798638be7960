package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// EntryHandler serves the public entry submission endpoint.
type EntryHandler struct {
	entrySvc service.EntryService
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entrySvc service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// Submit allocates numbers in the active raffle for a participant.
// POST /api/v1/entries
func (h *EntryHandler) Submit(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.entrySvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *EntryHandler) handleEntryError(c *gin.Context, err error) {
	var insufficient *service.InsufficientNumbersError
	switch {
	case errors.Is(err, service.ErrNoActiveRaffle):
		response.NotFound(c, 12001, "no raffle is accepting entries")
	case errors.Is(err, service.ErrCustomQuantity):
		response.BadRequest(c, 12002, "custom quantity requires a positive value")
	case errors.Is(err, service.ErrQuantityExceedsMax):
		response.BadRequest(c, 12003, "quantity exceeds the raffle maximum")
	case errors.Is(err, service.ErrSoldOut):
		response.Conflict(c, 12004, "all numbers are allocated")
	case errors.As(err, &insufficient):
		response.Conflict(c, 12005, fmt.Sprintf("only %d numbers remaining", insufficient.Remaining))
	case errors.Is(err, service.ErrNumbersTaken):
		response.Conflict(c, 12006, "numbers were just taken, please try again")
	default:
		response.InternalError(c)
	}
}
