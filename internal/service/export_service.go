package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/internal/repository"
)

// ── export module errors ──

var (
	ErrExportNoAllocations = errors.New("no allocations to export")
	ErrExportGenerateFail  = errors.New("generating spreadsheet failed")
)

// ExportService renders admin exports.
//
// Allocations are exported as a flat .xlsx sheet, one row per allocated
// number, returned as a bytes.Buffer for the handler to stream.
type ExportService interface {
	AllocationsXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) AllocationsXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	allocations, err := s.repo.RaffleNumber.ListAll(ctx)
	if err != nil {
		s.logger.Error("loading allocations failed", zap.Error(err))
		return nil, "", err
	}
	if len(allocations) == 0 {
		return nil, "", ErrExportNoAllocations
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Allocations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Raffle", "Number", "Participant", "Email", "Payment Reference", "Confirmed", "Allocated At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, a := range allocations {
		raffleName := fmt.Sprintf("#%d", a.RaffleID)
		if a.Raffle != nil {
			raffleName = a.Raffle.Name
		}
		participantName, email, reference := "", "", ""
		confirmed := false
		if a.Participant != nil {
			participantName = a.Participant.FirstName + " " + a.Participant.LastName
			email = a.Participant.Email
			reference = a.Participant.ReferenceNumber
			confirmed = a.Participant.Confirmed
		}

		values := []interface{}{
			raffleName,
			a.Number,
			participantName,
			email,
			reference,
			confirmed,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing spreadsheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("allocations_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
