package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/model"
)

// RaffleNumberRepository is the allocation data-access interface.
type RaffleNumberRepository interface {
	CreateBatch(ctx context.Context, numbers []model.RaffleNumber) error
	GetByID(ctx context.Context, id uint) (*model.RaffleNumber, error)
	UsedNumbers(ctx context.Context, raffleID uint) ([]string, error)
	CountByRaffle(ctx context.Context, raffleID uint) (int64, error)
	ListByParticipant(ctx context.Context, participantID uint) ([]model.RaffleNumber, error)
	List(ctx context.Context, raffleID *uint, offset, limit int) ([]model.RaffleNumber, int64, error)
	ListAll(ctx context.Context) ([]model.RaffleNumber, error)
	Delete(ctx context.Context, id uint) error
}

type raffleNumberRepo struct {
	db *gorm.DB
}

// NewRaffleNumberRepo creates a RaffleNumberRepository.
func NewRaffleNumberRepo(db *gorm.DB) RaffleNumberRepository {
	return &raffleNumberRepo{db: db}
}

// CreateBatch inserts all allocation rows in one statement so a unique
// conflict rejects the whole draw atomically.
func (r *raffleNumberRepo) CreateBatch(ctx context.Context, numbers []model.RaffleNumber) error {
	return r.db.WithContext(ctx).Create(&numbers).Error
}

func (r *raffleNumberRepo) GetByID(ctx context.Context, id uint) (*model.RaffleNumber, error) {
	var number model.RaffleNumber
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&number).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// UsedNumbers returns the numbers already allocated within a raffle.
func (r *raffleNumberRepo) UsedNumbers(ctx context.Context, raffleID uint) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&model.RaffleNumber{}).
		Where("raffle_id = ?", raffleID).
		Pluck("number", &numbers).Error
	return numbers, err
}

func (r *raffleNumberRepo) CountByRaffle(ctx context.Context, raffleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RaffleNumber{}).
		Where("raffle_id = ?", raffleID).
		Count(&count).Error
	return count, err
}

func (r *raffleNumberRepo) ListByParticipant(ctx context.Context, participantID uint) ([]model.RaffleNumber, error) {
	var numbers []model.RaffleNumber
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("number ASC").
		Find(&numbers).Error
	return numbers, err
}

func (r *raffleNumberRepo) List(ctx context.Context, raffleID *uint, offset, limit int) ([]model.RaffleNumber, int64, error) {
	var numbers []model.RaffleNumber
	var total int64

	db := r.db.WithContext(ctx).Model(&model.RaffleNumber{})
	if raffleID != nil {
		db = db.Where("raffle_id = ?", *raffleID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Participant").Preload("Raffle").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&numbers).Error; err != nil {
		return nil, 0, err
	}

	return numbers, total, nil
}

// ListAll returns every allocation with its participant and raffle, used by
// the spreadsheet export.
func (r *raffleNumberRepo) ListAll(ctx context.Context) ([]model.RaffleNumber, error) {
	var numbers []model.RaffleNumber
	err := r.db.WithContext(ctx).
		Preload("Participant").Preload("Raffle").
		Order("raffle_id ASC, number ASC").
		Find(&numbers).Error
	return numbers, err
}

func (r *raffleNumberRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RaffleNumber{}, id).Error
}
