package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/scanmap/server-go/internal/repository"
)

var sessionExportHeader = []string{
	"Session ID",
	"Node",
	"Building",
	"Room",
	"Started At",
	"Ended At",
	"Active",
	"Linked Scans",
}

// ExportService renders scan sessions as an xlsx report for offline
// analysis.
type ExportService struct {
	sessionRepo repository.SessionRepository
	linkRepo    repository.RoomScanRepository
}

func NewExportService(
	sessionRepo repository.SessionRepository,
	linkRepo repository.RoomScanRepository,
) *ExportService {
	return &ExportService{sessionRepo: sessionRepo, linkRepo: linkRepo}
}

// SessionsReport returns an xlsx workbook of all sessions, newest first,
// with per-session linked scan counts.
func (s *ExportService) SessionsReport(ctx context.Context) ([]byte, error) {
	sessions, err := s.sessionRepo.ListWithLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Scan Sessions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, title := range sessionExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, session := range sessions {
		linked, err := s.linkRepo.CountBySession(ctx, session.ID)
		if err != nil {
			log.Warn().Err(err).Int("sessionId", session.ID).Msg("failed to count linked scans")
			linked = 0
		}

		endedAt := ""
		if session.EndedAt != nil {
			endedAt = session.EndedAt.Format(time.RFC3339)
		}

		values := []any{
			session.ID,
			session.Node,
			session.BuildingName,
			session.RoomName,
			session.StartedAt.Format(time.RFC3339),
			endedAt,
			session.IsActive,
			linked,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
