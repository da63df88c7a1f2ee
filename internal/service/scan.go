package service

import (
	"context"
	"fmt"

	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/repository"
)

type RoomScansResult struct {
	Room *model.RoomWithBuilding `json:"room"`
	Rows []model.RoomScanRow     `json:"rows"`
}

type BuildingScansResult struct {
	Building *model.Building     `json:"building"`
	Rows     []model.RoomScanRow `json:"rows"`
}

// ScanService serves scan retrieval scoped by room or building via the
// session link table.
type ScanService struct {
	scanRepo     repository.ScanRepository
	roomRepo     repository.RoomRepository
	buildingRepo repository.BuildingRepository
}

func NewScanService(
	scanRepo repository.ScanRepository,
	roomRepo repository.RoomRepository,
	buildingRepo repository.BuildingRepository,
) *ScanService {
	return &ScanService{
		scanRepo:     scanRepo,
		roomRepo:     roomRepo,
		buildingRepo: buildingRepo,
	}
}

func (s *ScanService) Recent(ctx context.Context, limit int) ([]model.WifiScan, error) {
	return s.scanRepo.Recent(ctx, limit)
}

// RoomScans returns scans linked to the room, newest first.
func (s *ScanService) RoomScans(ctx context.Context, roomID int, limit int) (*RoomScansResult, error) {
	room, err := s.roomRepo.FindWithBuilding(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, apperrors.NotFound("Room")
	}

	rows, err := s.scanRepo.ForRoom(ctx, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("scans for room: %w", err)
	}

	return &RoomScansResult{Room: room, Rows: rows}, nil
}

// BuildingScans returns scans linked to any room in the building, newest
// first.
func (s *ScanService) BuildingScans(ctx context.Context, buildingID int, limit int) (*BuildingScansResult, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("find building: %w", err)
	}
	if building == nil {
		return nil, apperrors.NotFound("Building")
	}

	rows, err := s.scanRepo.ForBuilding(ctx, buildingID, limit)
	if err != nil {
		return nil, fmt.Errorf("scans for building: %w", err)
	}

	return &BuildingScansResult{Building: building, Rows: rows}, nil
}
