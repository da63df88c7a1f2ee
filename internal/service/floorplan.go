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

type FloorPlanService struct {
	floorPlanRepo repository.FloorPlanRepository
	buildingRepo  repository.BuildingRepository
}

func NewFloorPlanService(
	floorPlanRepo repository.FloorPlanRepository,
	buildingRepo repository.BuildingRepository,
) *FloorPlanService {
	return &FloorPlanService{floorPlanRepo: floorPlanRepo, buildingRepo: buildingRepo}
}

func (s *FloorPlanService) Create(ctx context.Context, buildingID int, floorName, imageURL string) (*model.FloorPlan, error) {
	floorName = strings.TrimSpace(floorName)
	if floorName == "" {
		return nil, apperrors.MissingRequired("floor_name")
	}
	if imageURL == "" {
		return nil, apperrors.MissingRequired("image_url")
	}

	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("find building: %w", err)
	}
	if building == nil {
		return nil, apperrors.NotFound("Building")
	}

	plan, err := s.floorPlanRepo.Create(ctx, model.CreateFloorPlanParams{
		BuildingID: buildingID,
		FloorName:  floorName,
		ImageURL:   imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create floor plan: %w", err)
	}

	log.Info().Int("floorplanId", plan.ID).Int("buildingId", buildingID).Msg("floor plan created")
	return plan, nil
}

func (s *FloorPlanService) ListByBuilding(ctx context.Context, buildingID int) ([]model.FloorPlan, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("find building: %w", err)
	}
	if building == nil {
		return nil, apperrors.NotFound("Building")
	}

	return s.floorPlanRepo.ListByBuilding(ctx, buildingID)
}

func (s *FloorPlanService) Delete(ctx context.Context, id int) error {
	deleted, err := s.floorPlanRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete floor plan: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Floor plan")
	}

	log.Info().Int("floorplanId", id).Msg("floor plan deleted")
	return nil
}
