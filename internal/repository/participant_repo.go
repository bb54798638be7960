package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/internal/model"
)

// ParticipantRepository is the participant data-access interface.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *model.Participant) error
	GetByID(ctx context.Context, id uint) (*model.Participant, error)
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
	Update(ctx context.Context, participant *model.Participant) error
	List(ctx context.Context, offset, limit int) ([]model.Participant, int64, error)
	Delete(ctx context.Context, id uint) error
}

type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo creates a ParticipantRepository.
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id uint) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Preload("RaffleNumbers").
		Where("id = ?", id).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) Update(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

func (r *participantRepo) List(ctx context.Context, offset, limit int) ([]model.Participant, int64, error) {
	var participants []model.Participant
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Participant{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("RaffleNumbers").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&participants).Error; err != nil {
		return nil, 0, err
	}

	return participants, total, nil
}

// Delete removes a participant; the foreign key cascades their allocations.
func (r *participantRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&model.Participant{}, id).Error
}
