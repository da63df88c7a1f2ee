package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/repository"
)

type RoomService struct {
	roomRepo     repository.RoomRepository
	buildingRepo repository.BuildingRepository
}

func NewRoomService(roomRepo repository.RoomRepository, buildingRepo repository.BuildingRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, buildingRepo: buildingRepo}
}

func (s *RoomService) Create(ctx context.Context, params model.CreateRoomParams) (*model.Room, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	building, err := s.buildingRepo.FindByID(ctx, params.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("find building: %w", err)
	}
	if building == nil {
		return nil, apperrors.NotFound("Building")
	}

	room, err := s.roomRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	log.Info().
		Int("roomId", room.ID).
		Int("buildingId", params.BuildingID).
		Str("name", params.Name).
		Msg("room created")
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id int) (*model.RoomWithBuilding, error) {
	room, err := s.roomRepo.FindWithBuilding(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, apperrors.NotFound("Room")
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context, buildingID *int) ([]model.RoomWithBuilding, error) {
	return s.roomRepo.List(ctx, buildingID)
}

// Delete removes the room; its sessions and scan links cascade while raw
// scans persist with their legacy tag nulled.
func (s *RoomService) Delete(ctx context.Context, id int) error {
	deleted, err := s.roomRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Room")
	}

	log.Info().Int("roomId", id).Msg("room deleted")
	return nil
}
