package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/model"
)

// RaffleRepository is the raffle data-access interface.
type RaffleRepository interface {
	Create(ctx context.Context, raffle *model.Raffle) error
	GetByID(ctx context.Context, id uint) (*model.Raffle, error)
	GetActive(ctx context.Context) (*model.Raffle, error)
	ListActive(ctx context.Context) ([]model.Raffle, error)
	List(ctx context.Context, offset, limit int) ([]model.Raffle, int64, error)
	Update(ctx context.Context, raffle *model.Raffle) error
	Delete(ctx context.Context, id uint) error
	ClearActive(ctx context.Context) error
}

type raffleRepo struct {
	db *gorm.DB
}

// NewRaffleRepo creates a RaffleRepository.
func NewRaffleRepo(db *gorm.DB) RaffleRepository {
	return &raffleRepo{db: db}
}

func (r *raffleRepo) Create(ctx context.Context, raffle *model.Raffle) error {
	return r.db.WithContext(ctx).Create(raffle).Error
}

func (r *raffleRepo) GetByID(ctx context.Context, id uint) (*model.Raffle, error) {
	var raffle model.Raffle
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&raffle).Error
	if err != nil {
		return nil, err
	}
	return &raffle, nil
}

func (r *raffleRepo) GetActive(ctx context.Context) (*model.Raffle, error) {
	var raffle model.Raffle
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		First(&raffle).Error
	if err != nil {
		return nil, err
	}
	return &raffle, nil
}

func (r *raffleRepo) ListActive(ctx context.Context) ([]model.Raffle, error) {
	var raffles []model.Raffle
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&raffles).Error
	return raffles, err
}

func (r *raffleRepo) List(ctx context.Context, offset, limit int) ([]model.Raffle, int64, error) {
	var raffles []model.Raffle
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Raffle{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("start_date DESC").
		Find(&raffles).Error; err != nil {
		return nil, 0, err
	}

	return raffles, total, nil
}

func (r *raffleRepo) Update(ctx context.Context, raffle *model.Raffle) error {
	return r.db.WithContext(ctx).Save(raffle).Error
}

func (r *raffleRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Raffle{}, id).Error
}

// ClearActive deactivates every raffle.
func (r *raffleRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Raffle{}).
		Where("active = ?", true).
		Update("active", false).Error
}
