package handler

import (
	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	Entry       *EntryHandler
	Raffle      *RaffleHandler
	Participant *ParticipantHandler
	Number      *NumberHandler
	Rate        *RateHandler
	Export      *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(cfg, svc.Auth),
		Entry:       NewEntryHandler(svc.Entry),
		Raffle:      NewRaffleHandler(cfg, svc.Raffle),
		Participant: NewParticipantHandler(svc.Participant),
		Number:      NewNumberHandler(svc.Number),
		Rate:        NewRateHandler(svc.Rate),
		Export:      NewExportHandler(svc.Export),
	}
}
