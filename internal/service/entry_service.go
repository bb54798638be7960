package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
)

// ── entry module errors ──

var (
	ErrNoActiveRaffle     = errors.New("no raffle is accepting entries")
	ErrCustomQuantity     = errors.New("custom quantity requires a positive value")
	ErrQuantityExceedsMax = errors.New("quantity exceeds the raffle maximum")
	ErrSoldOut            = errors.New("no numbers available")
	ErrNumbersTaken       = errors.New("numbers were just taken, please try again")
)

// InsufficientNumbersError reports how many numbers remain when a request
// asks for more than are available.
type InsufficientNumbersError struct {
	Remaining int
}

func (e *InsufficientNumbersError) Error() string {
	return fmt.Sprintf("only %d numbers remaining", e.Remaining)
}

// allocateAttempts bounds the conditional-insert retry loop. A retry only
// happens when a concurrent entry committed overlapping numbers between our
// availability read and our insert.
const allocateAttempts = 3

// EntryService runs the number allocation workflow.
type EntryService interface {
	Submit(ctx context.Context, req *dto.EntryRequest) (*dto.EntryResponse, error)
}

type entryService struct {
	repo   *repository.Repository
	mailer Mailer
	logger *zap.Logger
}

// NewEntryService creates an EntryService.
func NewEntryService(repo *repository.Repository, mailer Mailer, logger *zap.Logger) EntryService {
	return &entryService{repo: repo, mailer: mailer, logger: logger}
}

// Submit validates the request against the active raffle, draws a uniform
// random sample of unused numbers, persists the allocation transactionally
// and mails the participant. The unique (number, raffle) index backs the
// draw: a conflicting concurrent draw rolls back and is retried against
// refreshed availability.
func (s *entryService) Submit(ctx context.Context, req *dto.EntryRequest) (*dto.EntryResponse, error) {
	quantity, err := resolveQuantity(req)
	if err != nil {
		return nil, err
	}

	raffle, err := s.repo.Raffle.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveRaffle
		}
		s.logger.Error("loading active raffle failed", zap.Error(err))
		return nil, err
	}

	if quantity > raffle.MaxNumber {
		return nil, ErrQuantityExceedsMax
	}

	var (
		participant *model.Participant
		drawn       []string
	)
	for attempt := 1; attempt <= allocateAttempts; attempt++ {
		used, err := s.repo.RaffleNumber.UsedNumbers(ctx, raffle.ID)
		if err != nil {
			s.logger.Error("loading used numbers failed", zap.Error(err))
			return nil, err
		}

		available := availableNumbers(raffle.MaxNumber, used)
		if len(available) == 0 {
			return nil, ErrSoldOut
		}
		if len(available) < quantity {
			return nil, &InsufficientNumbersError{Remaining: len(available)}
		}

		drawn = sample(available, quantity)

		participant, err = s.persistAllocation(ctx, req, raffle, drawn)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("allocation conflict, retrying with refreshed availability",
				zap.Uint("raffle_id", raffle.ID),
				zap.Int("attempt", attempt),
			)
			participant = nil
			continue
		}
		s.logger.Error("persisting allocation failed", zap.Error(err))
		return nil, err
	}
	if participant == nil {
		return nil, ErrNumbersTaken
	}

	// The allocation is committed; a mail failure must not turn it into a
	// user-facing error.
	emailSent := true
	if err := s.mailer.SendNumbers(req.Email, req.FirstName, drawn, req.ReferenceNumber, req.BankAccount); err != nil {
		s.logger.Error("notification mail failed", zap.String("email", req.Email), zap.Error(err))
		emailSent = false
	}

	return &dto.EntryResponse{
		RaffleID:   raffle.ID,
		RaffleName: raffle.Name,
		Numbers:    drawn,
		TotalPrice: quantity * raffle.PricePerNumber,
		EmailSent:  emailSent,
	}, nil
}

// persistAllocation upserts the participant by email and inserts one row per
// drawn number, all in one transaction.
func (s *entryService) persistAllocation(ctx context.Context, req *dto.EntryRequest, raffle *model.Raffle, drawn []string) (*model.Participant, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	participant, err := s.upsertParticipant(ctx, txRepo, req)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	rows := make([]model.RaffleNumber, 0, len(drawn))
	for _, number := range drawn {
		rows = append(rows, model.RaffleNumber{
			Number:        number,
			ParticipantID: participant.ID,
			RaffleID:      raffle.ID,
		})
	}
	if err := txRepo.RaffleNumber.CreateBatch(ctx, rows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	return participant, nil
}

// upsertParticipant looks up the participant by email and overwrites the
// contact fields on a repeat entry, or creates the record on the first.
func (s *entryService) upsertParticipant(ctx context.Context, repo *repository.Repository, req *dto.EntryRequest) (*model.Participant, error) {
	participant, err := repo.Participant.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		participant = &model.Participant{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Address:         req.Address,
			ReferenceNumber: req.ReferenceNumber,
			BankAccount:     req.BankAccount,
			Email:           req.Email,
		}
		if err := repo.Participant.Create(ctx, participant); err != nil {
			return nil, err
		}
		return participant, nil
	}

	participant.FirstName = req.FirstName
	participant.LastName = req.LastName
	participant.Address = req.Address
	participant.ReferenceNumber = req.ReferenceNumber
	participant.BankAccount = req.BankAccount
	if err := repo.Participant.Update(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// resolveQuantity turns the form quantity choice into an integer. Choosing
// "custom" without a value is rejected outright.
func resolveQuantity(req *dto.EntryRequest) (int, error) {
	if req.NumNumbers == "custom" {
		if req.CustomNumber == nil || *req.CustomNumber < 1 {
			return 0, ErrCustomQuantity
		}
		return *req.CustomNumber, nil
	}
	quantity, err := strconv.Atoi(req.NumNumbers)
	if err != nil || quantity < 1 {
		return 0, ErrCustomQuantity
	}
	return quantity, nil
}

// availableNumbers enumerates [1, max] as zero-padded strings sized to the
// digit width of max, minus the already allocated set. The allocated count
// can exceed max after a raffle edit, so the capacity hint is clamped.
func availableNumbers(max int, used []string) []string {
	usedSet := make(map[string]struct{}, len(used))
	for _, n := range used {
		usedSet[n] = struct{}{}
	}

	capacity := max - len(used)
	if capacity < 0 {
		capacity = 0
	}
	width := len(strconv.Itoa(max))
	available := make([]string, 0, capacity)
	for n := 1; n <= max; n++ {
		formatted := fmt.Sprintf("%0*d", width, n)
		if _, taken := usedSet[formatted]; !taken {
			available = append(available, formatted)
		}
	}
	return available
}

// sample draws a uniform random sample without replacement.
func sample(available []string, quantity int) []string {
	pool := make([]string, len(available))
	copy(pool, available)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:quantity]
}
