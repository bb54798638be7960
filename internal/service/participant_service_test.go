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

// ── test helpers ──

type participantFixture struct {
	svc          ParticipantService
	participants *mockParticipantRepo
	numbers      *mockRaffleNumberRepo
	mailer       *mockMailer
}

func setupTestParticipantService() *participantFixture {
	participants := newMockParticipantRepo()
	numbers := newMockRaffleNumberRepo()
	repo := &repository.Repository{
		Account:      newMockAccountRepo(),
		Participant:  participants,
		Raffle:       newMockRaffleRepo(),
		RaffleNumber: numbers,
	}
	mailer := &mockMailer{}
	svc := NewParticipantService(repo, mailer, zap.NewNop())
	return &participantFixture{svc: svc, participants: participants, numbers: numbers, mailer: mailer}
}

func (f *participantFixture) seedParticipant(t *testing.T, email string) *model.Participant {
	t.Helper()
	participant := &model.Participant{
		FirstName:       "Maria",
		LastName:        "Gonzalez",
		Address:         "Av. Bolivar 12",
		ReferenceNumber: "REF-0099",
		BankAccount:     "0102-1234",
		Email:           email,
	}
	if err := f.participants.Create(context.Background(), participant); err != nil {
		t.Fatalf("seeding participant: %v", err)
	}
	return participant
}

// ── SendNumbers tests ──

func TestParticipantService_SendNumbers_Success(t *testing.T) {
	f := setupTestParticipantService()
	participant := f.seedParticipant(t, "maria@example.com")

	seed := []model.RaffleNumber{
		{Number: "007", ParticipantID: participant.ID, RaffleID: 1},
		{Number: "003", ParticipantID: participant.ID, RaffleID: 1},
	}
	if err := f.numbers.CreateBatch(context.Background(), seed); err != nil {
		t.Fatalf("seeding numbers: %v", err)
	}

	result, err := f.svc.SendNumbers(context.Background(), participant.ID)
	if err != nil {
		t.Fatalf("SendNumbers should succeed: %v", err)
	}
	if result.Email != "maria@example.com" {
		t.Errorf("unexpected email %q", result.Email)
	}
	if len(result.Numbers) != 2 || result.Numbers[0] != "003" {
		t.Errorf("expected [003 007], got %v", result.Numbers)
	}
	if f.mailer.sent != 1 || f.mailer.lastTo != "maria@example.com" {
		t.Errorf("mail not sent to participant: sent=%d to=%q", f.mailer.sent, f.mailer.lastTo)
	}
	if f.mailer.lastBank != "0102-1234" {
		t.Errorf("resend must carry the stored bank account, got %q", f.mailer.lastBank)
	}
	if !participant.Confirmed {
		t.Error("participant should be confirmed after send")
	}
}

func TestParticipantService_SendNumbers_NoAllocations(t *testing.T) {
	f := setupTestParticipantService()
	participant := f.seedParticipant(t, "maria@example.com")

	_, err := f.svc.SendNumbers(context.Background(), participant.ID)
	if !errors.Is(err, ErrNoNumbersToSend) {
		t.Errorf("expected ErrNoNumbersToSend, got: %v", err)
	}
	if f.mailer.sent != 0 {
		t.Error("no mail may go out without allocations")
	}
}

func TestParticipantService_SendNumbers_MailFailure(t *testing.T) {
	f := setupTestParticipantService()
	participant := f.seedParticipant(t, "maria@example.com")
	f.mailer.err = errMockMail

	seed := []model.RaffleNumber{{Number: "007", ParticipantID: participant.ID, RaffleID: 1}}
	if err := f.numbers.CreateBatch(context.Background(), seed); err != nil {
		t.Fatalf("seeding numbers: %v", err)
	}

	_, err := f.svc.SendNumbers(context.Background(), participant.ID)
	if !errors.Is(err, ErrMailDelivery) {
		t.Errorf("expected ErrMailDelivery, got: %v", err)
	}
	if participant.Confirmed {
		t.Error("confirmed flag may only flip after a successful send")
	}
}

func TestParticipantService_SendNumbers_NotFound(t *testing.T) {
	f := setupTestParticipantService()

	_, err := f.svc.SendNumbers(context.Background(), 42)
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got: %v", err)
	}
}

// ── Delete tests ──

func TestParticipantService_Delete(t *testing.T) {
	f := setupTestParticipantService()
	participant := f.seedParticipant(t, "maria@example.com")

	if err := f.svc.Delete(context.Background(), participant.ID); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if _, err := f.participants.GetByID(context.Background(), participant.ID); err == nil {
		t.Error("participant should be gone")
	}
}

func TestParticipantService_Delete_NotFound(t *testing.T) {
	f := setupTestParticipantService()

	err := f.svc.Delete(context.Background(), 42)
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("expected ErrParticipantNotFound, got: %v", err)
	}
}

// ── List tests ──

func TestParticipantService_List(t *testing.T) {
	f := setupTestParticipantService()
	f.seedParticipant(t, "a@example.com")
	f.seedParticipant(t, "b@example.com")
	f.seedParticipant(t, "c@example.com")

	result, total, err := f.svc.List(context.Background(), &dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total=3, got %d", total)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 rows on the page, got %d", len(result))
	}
}
