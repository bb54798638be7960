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

// ── participant module errors ──

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNoNumbersToSend     = errors.New("participant has no allocated numbers")
	ErrMailDelivery        = errors.New("mail delivery failed")
)

// ParticipantService is the participant administration interface.
type ParticipantService interface {
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.ParticipantResponse, int64, error)
	Delete(ctx context.Context, id uint) error
	SendNumbers(ctx context.Context, id uint) (*dto.SendNumbersResponse, error)
}

type participantService struct {
	repo   *repository.Repository
	mailer Mailer
	logger *zap.Logger
}

// NewParticipantService creates a ParticipantService.
func NewParticipantService(repo *repository.Repository, mailer Mailer, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, mailer: mailer, logger: logger}
}

func (s *participantService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.ParticipantResponse, int64, error) {
	participants, total, err := s.repo.Participant.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("listing participants failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		result = append(result, *toParticipantResponse(&participants[i]))
	}

	return result, total, nil
}

// Delete removes a participant together with their allocations (foreign key
// cascade).
func (s *participantService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Participant.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		s.logger.Error("loading participant failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Participant.Delete(ctx, id); err != nil {
		s.logger.Error("deleting participant failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	return nil
}

// SendNumbers re-mails a participant their allocated numbers and marks them
// confirmed. The confirmed flag only flips after the mail went out.
func (s *participantService) SendNumbers(ctx context.Context, id uint) (*dto.SendNumbersResponse, error) {
	participant, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("loading participant failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	allocations, err := s.repo.RaffleNumber.ListByParticipant(ctx, id)
	if err != nil {
		s.logger.Error("loading allocations failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, ErrNoNumbersToSend
	}

	numbers := make([]string, 0, len(allocations))
	for _, a := range allocations {
		numbers = append(numbers, a.Number)
	}

	if err := s.mailer.SendNumbers(participant.Email, participant.FirstName, numbers, participant.ReferenceNumber, participant.BankAccount); err != nil {
		s.logger.Error("notification mail failed", zap.String("email", participant.Email), zap.Error(err))
		return nil, ErrMailDelivery
	}

	participant.Confirmed = true
	if err := s.repo.Participant.Update(ctx, participant); err != nil {
		s.logger.Error("updating participant failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.SendNumbersResponse{
		Email:   participant.Email,
		Numbers: numbers,
	}, nil
}

// ── helpers ──

func toParticipantResponse(participant *model.Participant) *dto.ParticipantResponse {
	numbers := make([]string, 0, len(participant.RaffleNumbers))
	for _, n := range participant.RaffleNumbers {
		numbers = append(numbers, n.Number)
	}
	return &dto.ParticipantResponse{
		ID:              participant.ID,
		FirstName:       participant.FirstName,
		LastName:        participant.LastName,
		Address:         participant.Address,
		ReferenceNumber: participant.ReferenceNumber,
		BankAccount:     participant.BankAccount,
		Email:           participant.Email,
		Confirmed:       participant.Confirmed,
		Numbers:         numbers,
		CreatedAt:       participant.CreatedAt.Format(time.RFC3339),
	}
}
