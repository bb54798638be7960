package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// ParticipantHandler serves the participant administration endpoints.
type ParticipantHandler struct {
	participantSvc service.ParticipantService
}

// NewParticipantHandler creates a ParticipantHandler.
func NewParticipantHandler(participantSvc service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantSvc: participantSvc}
}

// List returns a page of participants with their numbers.
// GET /api/v1/participants
func (h *ParticipantHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, total, err := h.participantSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, result, total, page.GetPage(), page.GetPageSize())
}

// Delete removes a participant and their allocations.
// DELETE /api/v1/participants/:id
func (h *ParticipantHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.participantSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, nil)
}

// SendNumbers re-mails a participant their numbers and marks them confirmed.
// POST /api/v1/participants/:id/send-numbers
func (h *ParticipantHandler) SendNumbers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.participantSvc.SendNumbers(c.Request.Context(), id)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ParticipantHandler) handleParticipantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 14001, "participant not found")
	case errors.Is(err, service.ErrNoNumbersToSend):
		response.BadRequest(c, 14002, "participant has no allocated numbers")
	case errors.Is(err, service.ErrMailDelivery):
		response.Error(c, http.StatusBadGateway, 14003, "mail delivery failed")
	default:
		response.InternalError(c)
	}
}
