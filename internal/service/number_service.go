package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
)

// ErrNumberNotFound is returned for unknown allocation IDs.
var ErrNumberNotFound = errors.New("raffle number not found")

// NumberService is the allocation administration interface.
type NumberService interface {
	List(ctx context.Context, req *dto.ListNumbersRequest) ([]dto.NumberResponse, int64, error)
	Delete(ctx context.Context, id uint) error
}

type numberService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNumberService creates a NumberService.
func NewNumberService(repo *repository.Repository, logger *zap.Logger) NumberService {
	return &numberService{repo: repo, logger: logger}
}

func (s *numberService) List(ctx context.Context, req *dto.ListNumbersRequest) ([]dto.NumberResponse, int64, error) {
	numbers, total, err := s.repo.RaffleNumber.List(ctx, req.RaffleID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing numbers failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NumberResponse, 0, len(numbers))
	for i := range numbers {
		result = append(result, *toNumberResponse(&numbers[i]))
	}

	return result, total, nil
}

func (s *numberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.RaffleNumber.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNumberNotFound
		}
		s.logger.Error("loading number failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.RaffleNumber.Delete(ctx, id); err != nil {
		s.logger.Error("deleting number failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── helpers ──

func toNumberResponse(number *model.RaffleNumber) *dto.NumberResponse {
	resp := &dto.NumberResponse{
		ID:            number.ID,
		Number:        number.Number,
		RaffleID:      number.RaffleID,
		ParticipantID: number.ParticipantID,
		CreatedAt:     number.CreatedAt.Format(time.RFC3339),
	}
	if number.Raffle != nil {
		resp.RaffleName = number.Raffle.Name
	}
	if number.Participant != nil {
		resp.ParticipantName = number.Participant.FirstName + " " + number.Participant.LastName
		resp.ParticipantEmail = number.Participant.Email
	}
	return resp
}
