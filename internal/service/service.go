package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/repository"
	"github.com/espinosa98/rifa-backend/pkg/jwt"
	"github.com/espinosa98/rifa-backend/pkg/redis"
)

// Mailer delivers participant notifications. Implemented by pkg/mail.
type Mailer interface {
	SendNumbers(to, firstName string, numbers []string, reference, bankAccount string) error
}

// RateClient looks up currency conversion rates. Implemented by pkg/exchange.
type RateClient interface {
	Rate(ctx context.Context) (float64, error)
	Currency() string
}

// Service aggregates all business-logic interfaces.
type Service struct {
	Auth        AuthService
	Entry       EntryService
	Raffle      RaffleService
	Participant ParticipantService
	Number      NumberService
	Rate        RateService
	Export      ExportService
}

// NewService creates the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mailer Mailer,
	rates RateClient,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Entry:       NewEntryService(repo, mailer, logger),
		Raffle:      NewRaffleService(cfg, repo, logger),
		Participant: NewParticipantService(repo, mailer, logger),
		Number:      NewNumberService(repo, logger),
		Rate:        NewRateService(cfg, rdb, rates, logger),
		Export:      NewExportService(repo, logger),
	}
}
