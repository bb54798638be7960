package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/service"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// allowedImageExts are the accepted raffle artwork formats.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// RaffleHandler serves the raffle administration endpoints plus the public
// active-raffle view.
type RaffleHandler struct {
	cfg       *config.Config
	raffleSvc service.RaffleService
}

// NewRaffleHandler creates a RaffleHandler.
func NewRaffleHandler(cfg *config.Config, raffleSvc service.RaffleService) *RaffleHandler {
	return &RaffleHandler{cfg: cfg, raffleSvc: raffleSvc}
}

// GetActive returns the raffle currently accepting entries.
// GET /api/v1/raffles/active
func (h *RaffleHandler) GetActive(c *gin.Context) {
	result, err := h.raffleSvc.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRaffle) {
			response.NotFound(c, 12001, "no raffle is accepting entries")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns a page of raffles.
// GET /api/v1/raffles
func (h *RaffleHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, total, err := h.raffleSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, result, total, page.GetPage(), page.GetPageSize())
}

// Get returns one raffle.
// GET /api/v1/raffles/:id
func (h *RaffleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.raffleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRaffleError(c, err)
		return
	}

	response.OK(c, result)
}

// Create creates a raffle from a multipart form, optionally with artwork,
// and activates it.
// POST /api/v1/raffles
func (h *RaffleHandler) Create(c *gin.Context) {
	var req dto.CreateRaffleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	imageFilename, ok := h.saveImage(c)
	if !ok {
		return
	}

	result, deactivated, err := h.raffleSvc.Create(c.Request.Context(), &req, imageFilename)
	if err != nil {
		h.handleRaffleError(c, err)
		return
	}

	response.Created(c, gin.H{"raffle": result, "deactivated": deactivated})
}

// Update edits a raffle; only provided fields change.
// PUT /api/v1/raffles/:id
func (h *RaffleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRaffleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	imageFilename, ok := h.saveImage(c)
	if !ok {
		return
	}

	result, err := h.raffleSvc.Update(c.Request.Context(), id, &req, imageFilename)
	if err != nil {
		h.handleRaffleError(c, err)
		return
	}

	response.OK(c, result)
}

// Toggle flips a raffle's active flag.
// PUT /api/v1/raffles/:id/toggle
func (h *RaffleHandler) Toggle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.raffleSvc.Toggle(c.Request.Context(), id)
	if err != nil {
		h.handleRaffleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a raffle without allocations.
// DELETE /api/v1/raffles/:id
func (h *RaffleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.raffleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRaffleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Calendar downloads the raffle draw date as an .ics file.
// GET /api/v1/raffles/:id/calendar
func (h *RaffleHandler) Calendar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.raffleSvc.Calendar(c.Request.Context(), id)
	if err != nil {
		h.handleRaffleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// saveImage stores an uploaded artwork file under a random name and returns
// the stored filename. An absent file is fine and returns "". Writes the
// error response itself on rejection.
func (h *RaffleHandler) saveImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		response.BadRequest(c, 13005, "reading image upload failed")
		return "", false
	}

	if file.Size > h.cfg.Upload.MaxBytes {
		response.BadRequest(c, 13006, "image too large")
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		response.BadRequest(c, 13007, "unsupported image format")
		return "", false
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Upload.Dir, filename)); err != nil {
		response.InternalError(c)
		return "", false
	}
	return filename, true
}

func (h *RaffleHandler) handleRaffleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRaffleNotFound):
		response.NotFound(c, 13001, "raffle not found")
	case errors.Is(err, service.ErrRaffleNameTaken):
		response.Conflict(c, 13002, "raffle name already in use")
	case errors.Is(err, service.ErrRaffleDateInvalid):
		response.BadRequest(c, 13003, "invalid raffle start date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrRaffleHasNumbers):
		response.Conflict(c, 13004, "raffle has allocated numbers, remove them first")
	case errors.Is(err, service.ErrMaxBelowAllocated):
		response.Conflict(c, 13008, "max number is below the allocated count")
	default:
		response.InternalError(c)
	}
}
