package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
)

func setupTestNumberService(t *testing.T) (NumberService, *mockRaffleNumberRepo) {
	t.Helper()
	numbers := newMockRaffleNumberRepo()
	repo := &repository.Repository{
		Account:      newMockAccountRepo(),
		Participant:  newMockParticipantRepo(),
		Raffle:       newMockRaffleRepo(),
		RaffleNumber: numbers,
	}
	svc := NewNumberService(repo, zap.NewNop())
	return svc, numbers
}

func TestNumberService_List_FilterByRaffle(t *testing.T) {
	svc, numbers := setupTestNumberService(t)

	seed := []model.RaffleNumber{
		{Number: "001", ParticipantID: 1, RaffleID: 1},
		{Number: "002", ParticipantID: 1, RaffleID: 1},
		{Number: "001", ParticipantID: 2, RaffleID: 2},
	}
	if err := numbers.CreateBatch(context.Background(), seed); err != nil {
		t.Fatalf("seeding numbers: %v", err)
	}

	raffleID := uint(1)
	result, total, err := svc.List(context.Background(), &dto.ListNumbersRequest{RaffleID: &raffleID})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected total=2, got %d", total)
	}
	for _, n := range result {
		if n.RaffleID != 1 {
			t.Errorf("row for raffle %d leaked into the filter", n.RaffleID)
		}
	}
}

func TestNumberService_Delete(t *testing.T) {
	svc, numbers := setupTestNumberService(t)

	seed := []model.RaffleNumber{{Number: "001", ParticipantID: 1, RaffleID: 1}}
	if err := numbers.CreateBatch(context.Background(), seed); err != nil {
		t.Fatalf("seeding numbers: %v", err)
	}

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if len(numbers.numbers) != 0 {
		t.Error("allocation should be gone")
	}
}

func TestNumberService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestNumberService(t)

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, ErrNumberNotFound) {
		t.Errorf("expected ErrNumberNotFound, got: %v", err)
	}
}
