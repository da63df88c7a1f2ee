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

type BuildingService struct {
	buildingRepo repository.BuildingRepository
}

func NewBuildingService(buildingRepo repository.BuildingRepository) *BuildingService {
	return &BuildingService{buildingRepo: buildingRepo}
}

func (s *BuildingService) Create(ctx context.Context, name string, description *string) (*model.Building, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.buildingRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find building by name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Building name")
	}

	building, err := s.buildingRepo.Create(ctx, model.CreateBuildingParams{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}

	log.Info().Int("buildingId", building.ID).Str("name", name).Msg("building created")
	return building, nil
}

func (s *BuildingService) Get(ctx context.Context, id int) (*model.Building, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find building: %w", err)
	}
	if building == nil {
		return nil, apperrors.NotFound("Building")
	}
	return building, nil
}

func (s *BuildingService) List(ctx context.Context) ([]model.Building, error) {
	return s.buildingRepo.List(ctx)
}

// Delete removes the building and, via cascade, its rooms, floor plans,
// sessions and scan links. Raw scans survive.
func (s *BuildingService) Delete(ctx context.Context, id int) error {
	deleted, err := s.buildingRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Building")
	}

	log.Info().Int("buildingId", id).Msg("building deleted")
	return nil
}
