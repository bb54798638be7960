package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/pkg/redis"
)

// ErrRateLookup is returned when the third-party rate API cannot be reached
// or answers without the requested currency.
var ErrRateLookup = errors.New("conversion rate lookup failed")

// RateService exposes the currency conversion rate used for pricing display.
type RateService interface {
	Conversion(ctx context.Context) (*dto.RateResponse, error)
}

type rateService struct {
	cfg    *config.Config
	rdb    *redis.Client
	rates  RateClient
	logger *zap.Logger
}

// NewRateService creates a RateService.
func NewRateService(cfg *config.Config, rdb *redis.Client, rates RateClient, logger *zap.Logger) RateService {
	return &rateService{cfg: cfg, rdb: rdb, rates: rates, logger: logger}
}

// Conversion returns the cached rate when fresh, otherwise hits the API and
// refreshes the cache. Without Redis every call goes upstream.
func (s *rateService) Conversion(ctx context.Context) (*dto.RateResponse, error) {
	currency := s.rates.Currency()

	if s.rdb != nil {
		rate, found, err := s.rdb.GetRate(ctx, currency)
		if err != nil {
			s.logger.Warn("rate cache read failed", zap.Error(err))
		} else if found {
			return &dto.RateResponse{ExchangeRate: rate}, nil
		}
	}

	rate, err := s.rates.Rate(ctx)
	if err != nil {
		s.logger.Error("fetching conversion rate failed", zap.Error(err))
		return nil, ErrRateLookup
	}

	if s.rdb != nil {
		if err := s.rdb.SetRate(ctx, currency, rate, s.cfg.Exchange.CacheTTL); err != nil {
			s.logger.Warn("rate cache write failed", zap.Error(err))
		}
	}

	return &dto.RateResponse{ExchangeRate: rate}, nil
}
