package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	db *gorm.DB

	Account      AccountRepository
	Participant  ParticipantRepository
	Raffle       RaffleRepository
	RaffleNumber RaffleNumberRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		Account:      NewAccountRepo(db),
		Participant:  NewParticipantRepo(db),
		Raffle:       NewRaffleRepo(db),
		RaffleNumber: NewRaffleNumberRepo(db),
	}
}

// BeginTx starts a transaction. Returns (nil, nil) when no database is
// attached (mock-built repositories in tests); callers nil-guard the handle.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns a repository aggregate bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		db:           tx,
		Account:      NewAccountRepo(tx),
		Participant:  NewParticipantRepo(tx),
		Raffle:       NewRaffleRepo(tx),
		RaffleNumber: NewRaffleNumberRepo(tx),
	}
}
