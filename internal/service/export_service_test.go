package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
)

func setupTestExportService(t *testing.T) (ExportService, *mockRaffleNumberRepo) {
	t.Helper()
	numbers := newMockRaffleNumberRepo()
	repo := &repository.Repository{
		Account:      newMockAccountRepo(),
		Participant:  newMockParticipantRepo(),
		Raffle:       newMockRaffleRepo(),
		RaffleNumber: numbers,
	}
	svc := NewExportService(repo, zap.NewNop())
	return svc, numbers
}

func TestExportService_AllocationsXLSX(t *testing.T) {
	svc, numbers := setupTestExportService(t)

	seed := []model.RaffleNumber{
		{
			Number:        "007",
			ParticipantID: 1,
			RaffleID:      1,
			Raffle:        &model.Raffle{Name: "Navidad 2026"},
			Participant: &model.Participant{
				FirstName:       "Maria",
				LastName:        "Gonzalez",
				Email:           "maria@example.com",
				ReferenceNumber: "REF-0099",
			},
		},
		{Number: "015", ParticipantID: 1, RaffleID: 1},
	}
	if err := numbers.CreateBatch(context.Background(), seed); err != nil {
		t.Fatalf("seeding numbers: %v", err)
	}

	buf, filename, err := svc.AllocationsXLSX(context.Background())
	if err != nil {
		t.Fatalf("AllocationsXLSX should succeed: %v", err)
	}
	if filename == "" {
		t.Error("expected a filename")
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Allocations")
	if err != nil {
		t.Fatalf("reading sheet failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Raffle" || rows[0][1] != "Number" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][0] != "Navidad 2026" || rows[1][1] != "007" || rows[1][3] != "maria@example.com" {
		t.Errorf("unexpected first data row %v", rows[1])
	}
}

func TestExportService_AllocationsXLSX_Empty(t *testing.T) {
	svc, _ := setupTestExportService(t)

	_, _, err := svc.AllocationsXLSX(context.Background())
	if !errors.Is(err, ErrExportNoAllocations) {
		t.Errorf("expected ErrExportNoAllocations, got: %v", err)
	}
}
