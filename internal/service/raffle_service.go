package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
)

// ── raffle module errors ──

var (
	ErrRaffleNotFound    = errors.New("raffle not found")
	ErrRaffleNameTaken   = errors.New("raffle name already in use")
	ErrRaffleDateInvalid = errors.New("invalid raffle start date")
	ErrRaffleHasNumbers  = errors.New("raffle has allocated numbers")
	ErrMaxBelowAllocated = errors.New("max number is below the allocated count")
)

// RaffleService is the raffle lifecycle business interface.
type RaffleService interface {
	Create(ctx context.Context, req *dto.CreateRaffleRequest, imageFilename string) (*dto.RaffleResponse, []string, error)
	GetByID(ctx context.Context, id uint) (*dto.RaffleResponse, error)
	GetActive(ctx context.Context) (*dto.ActiveRaffleResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.RaffleResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateRaffleRequest, imageFilename string) (*dto.RaffleResponse, error)
	Toggle(ctx context.Context, id uint) (*dto.ToggleRaffleResponse, error)
	Delete(ctx context.Context, id uint) error
	Calendar(ctx context.Context, id uint) ([]byte, string, error)
}

type raffleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRaffleService creates a RaffleService.
func NewRaffleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RaffleService {
	return &raffleService{cfg: cfg, repo: repo, logger: logger}
}

// Create persists a new raffle and activates it, deactivating whichever
// raffles were active. The names of the deactivated raffles are returned so
// the administrator sees the side effect.
func (s *raffleService) Create(ctx context.Context, req *dto.CreateRaffleRequest, imageFilename string) (*dto.RaffleResponse, []string, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, nil, ErrRaffleDateInvalid
	}

	previouslyActive, err := s.repo.Raffle.ListActive(ctx)
	if err != nil {
		s.logger.Error("listing active raffles failed", zap.Error(err))
		return nil, nil, err
	}

	raffle := &model.Raffle{
		Name:           req.Name,
		StartDate:      startDate,
		Active:         true,
		MaxNumber:      req.MaxNumber,
		PricePerNumber: req.PricePerNumber,
		ImageFilename:  imageFilename,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("starting transaction failed", zap.Error(err))
		return nil, nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Raffle.ClearActive(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("deactivating raffles failed", zap.Error(err))
		return nil, nil, err
	}
	if err := txRepo.Raffle.Create(ctx, raffle); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrRaffleNameTaken
		}
		s.logger.Error("creating raffle failed", zap.Error(err))
		return nil, nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("committing transaction failed", zap.Error(err))
			return nil, nil, err
		}
	}

	deactivated := make([]string, 0, len(previouslyActive))
	for _, r := range previouslyActive {
		deactivated = append(deactivated, r.Name)
	}

	return s.toRaffleResponse(raffle, 0), deactivated, nil
}

func (s *raffleService) GetByID(ctx context.Context, id uint) (*dto.RaffleResponse, error) {
	raffle, err := s.repo.Raffle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		s.logger.Error("loading raffle failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.RaffleNumber.CountByRaffle(ctx, raffle.ID)
	if err != nil {
		s.logger.Error("counting allocations failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toRaffleResponse(raffle, count), nil
}

// GetActive is the public view used by the entry form.
func (s *raffleService) GetActive(ctx context.Context) (*dto.ActiveRaffleResponse, error) {
	raffle, err := s.repo.Raffle.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveRaffle
		}
		s.logger.Error("loading active raffle failed", zap.Error(err))
		return nil, err
	}

	count, err := s.repo.RaffleNumber.CountByRaffle(ctx, raffle.ID)
	if err != nil {
		s.logger.Error("counting allocations failed", zap.Uint("id", raffle.ID), zap.Error(err))
		return nil, err
	}

	return &dto.ActiveRaffleResponse{
		ID:               raffle.ID,
		Name:             raffle.Name,
		StartDate:        raffle.StartDate.Format("2006-01-02"),
		MaxNumber:        raffle.MaxNumber,
		PricePerNumber:   raffle.PricePerNumber,
		ImageURL:         s.imageURL(raffle.ImageFilename),
		NumbersRemaining: int64(raffle.MaxNumber) - count,
	}, nil
}

func (s *raffleService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.RaffleResponse, int64, error) {
	raffles, total, err := s.repo.Raffle.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("listing raffles failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RaffleResponse, 0, len(raffles))
	for i := range raffles {
		count, err := s.repo.RaffleNumber.CountByRaffle(ctx, raffles[i].ID)
		if err != nil {
			s.logger.Error("counting allocations failed", zap.Uint("id", raffles[i].ID), zap.Error(err))
			return nil, 0, err
		}
		result = append(result, *s.toRaffleResponse(&raffles[i], count))
	}

	return result, total, nil
}

func (s *raffleService) Update(ctx context.Context, id uint, req *dto.UpdateRaffleRequest, imageFilename string) (*dto.RaffleResponse, error) {
	raffle, err := s.repo.Raffle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		s.logger.Error("loading raffle failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.RaffleNumber.CountByRaffle(ctx, raffle.ID)
	if err != nil {
		s.logger.Error("counting allocations failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		raffle.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrRaffleDateInvalid
		}
		raffle.StartDate = startDate
	}
	if req.MaxNumber != nil {
		// Shrinking below the allocated count would strand sold numbers.
		if int64(*req.MaxNumber) < count {
			return nil, ErrMaxBelowAllocated
		}
		raffle.MaxNumber = *req.MaxNumber
	}
	if req.PricePerNumber != nil {
		raffle.PricePerNumber = *req.PricePerNumber
	}
	if imageFilename != "" {
		raffle.ImageFilename = imageFilename
	}

	if err := s.repo.Raffle.Update(ctx, raffle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRaffleNameTaken
		}
		s.logger.Error("updating raffle failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toRaffleResponse(raffle, count), nil
}

// Toggle flips the active flag. Activation deactivates every other raffle
// inside one transaction and reports their names.
func (s *raffleService) Toggle(ctx context.Context, id uint) (*dto.ToggleRaffleResponse, error) {
	raffle, err := s.repo.Raffle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaffleNotFound
		}
		s.logger.Error("loading raffle failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	var deactivated []string
	if raffle.Active {
		raffle.Active = false
		if err := s.repo.Raffle.Update(ctx, raffle); err != nil {
			s.logger.Error("deactivating raffle failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
	} else {
		previouslyActive, err := s.repo.Raffle.ListActive(ctx)
		if err != nil {
			s.logger.Error("listing active raffles failed", zap.Error(err))
			return nil, err
		}

		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			s.logger.Error("starting transaction failed", zap.Error(err))
			return nil, err
		}
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Raffle.ClearActive(ctx); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("deactivating raffles failed", zap.Error(err))
			return nil, err
		}
		raffle.Active = true
		if err := txRepo.Raffle.Update(ctx, raffle); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("activating raffle failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
		if tx != nil {
			if err := tx.Commit().Error; err != nil {
				s.logger.Error("committing transaction failed", zap.Error(err))
				return nil, err
			}
		}

		for _, r := range previouslyActive {
			deactivated = append(deactivated, r.Name)
		}
	}

	return &dto.ToggleRaffleResponse{
		ID:          raffle.ID,
		Name:        raffle.Name,
		Active:      raffle.Active,
		Deactivated: deactivated,
	}, nil
}

// Delete refuses to remove a raffle with allocations; deleting those first is
// an explicit admin decision, not a cascade surprise.
func (s *raffleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Raffle.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRaffleNotFound
		}
		s.logger.Error("loading raffle failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.RaffleNumber.CountByRaffle(ctx, id)
	if err != nil {
		s.logger.Error("counting allocations failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrRaffleHasNumbers
	}

	if err := s.repo.Raffle.Delete(ctx, id); err != nil {
		s.logger.Error("deleting raffle failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	return nil
}

// Calendar renders the raffle draw date as a single-event iCalendar file.
func (s *raffleService) Calendar(ctx context.Context, id uint) ([]byte, string, error) {
	raffle, err := s.repo.Raffle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrRaffleNotFound
		}
		s.logger.Error("loading raffle failed", zap.Uint("id", id), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(fmt.Sprintf("raffle-%d@rifa-backend", raffle.ID))
	event.SetCreatedTime(time.Now())
	event.SetAllDayStartAt(raffle.StartDate)
	event.SetAllDayEndAt(raffle.StartDate.AddDate(0, 0, 1))
	event.SetSummary("Raffle draw: " + raffle.Name)
	event.SetDescription(fmt.Sprintf("Numbers 1-%d at %d each.", raffle.MaxNumber, raffle.PricePerNumber))

	filename := fmt.Sprintf("raffle_%d.ics", raffle.ID)
	return []byte(cal.Serialize()), filename, nil
}

// ── helpers ──

func (s *raffleService) toRaffleResponse(raffle *model.Raffle, numbersCount int64) *dto.RaffleResponse {
	return &dto.RaffleResponse{
		ID:             raffle.ID,
		Name:           raffle.Name,
		StartDate:      raffle.StartDate.Format("2006-01-02"),
		Active:         raffle.Active,
		MaxNumber:      raffle.MaxNumber,
		PricePerNumber: raffle.PricePerNumber,
		ImageURL:       s.imageURL(raffle.ImageFilename),
		NumbersCount:   numbersCount,
		CreatedAt:      raffle.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      raffle.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *raffleService) imageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return s.cfg.Server.BaseURL + "/media/images/" + filename
}
