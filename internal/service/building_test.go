package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/model"
)

func TestBuildingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewBuildingService(new(mockBuildingRepo))

		_, err := svc.Create(ctx, "   ", nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		svc := NewBuildingService(buildingRepo)

		buildingRepo.On("FindByName", ctx, "Engineering Hall").
			Return(&model.Building{ID: 1, Name: "Engineering Hall"}, nil).Once()

		_, err := svc.Create(ctx, "Engineering Hall", nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeAlreadyExists, apperrors.GetCode(err))
	})

	t.Run("creates building with trimmed name", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		svc := NewBuildingService(buildingRepo)

		buildingRepo.On("FindByName", ctx, "Engineering Hall").Return(nil, nil).Once()
		buildingRepo.On("Create", ctx, model.CreateBuildingParams{Name: "Engineering Hall"}).
			Return(&model.Building{ID: 1, Name: "Engineering Hall"}, nil).Once()

		building, err := svc.Create(ctx, "  Engineering Hall  ", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, building.ID)

		buildingRepo.AssertExpectations(t)
	})
}

func TestBuildingDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		svc := NewBuildingService(buildingRepo)

		buildingRepo.On("Delete", ctx, 99).Return(false, nil).Once()

		err := svc.Delete(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("deletes existing building", func(t *testing.T) {
		buildingRepo := new(mockBuildingRepo)
		svc := NewBuildingService(buildingRepo)

		buildingRepo.On("Delete", ctx, 1).Return(true, nil).Once()

		require.NoError(t, svc.Delete(ctx, 1))
	})
}

func TestRoomCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewRoomService(new(mockRoomRepo), new(mockBuildingRepo))

		_, err := svc.Create(ctx, model.CreateRoomParams{Name: "", BuildingID: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("rejects missing building", func(t *testing.T) {
		roomRepo := new(mockRoomRepo)
		buildingRepo := new(mockBuildingRepo)
		svc := NewRoomService(roomRepo, buildingRepo)

		buildingRepo.On("FindByID", ctx, 99).Return(nil, nil).Once()

		_, err := svc.Create(ctx, model.CreateRoomParams{Name: "Lab 301", BuildingID: 99})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("creates room in existing building", func(t *testing.T) {
		roomRepo := new(mockRoomRepo)
		buildingRepo := new(mockBuildingRepo)
		svc := NewRoomService(roomRepo, buildingRepo)

		buildingRepo.On("FindByID", ctx, 1).Return(&model.Building{ID: 1}, nil).Once()
		roomRepo.On("Create", ctx, model.CreateRoomParams{Name: "Lab 301", BuildingID: 1}).
			Return(&model.Room{ID: 3, Name: "Lab 301", BuildingID: 1}, nil).Once()

		room, err := svc.Create(ctx, model.CreateRoomParams{Name: "Lab 301", BuildingID: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, room.ID)
	})
}

func TestFloorPlanCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := NewFloorPlanService(new(mockFloorPlanRepo), new(mockBuildingRepo))

		_, err := svc.Create(ctx, 1, "", "https://example.com/plan.png")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))

		_, err = svc.Create(ctx, 1, "Floor 3", "")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("creates plan for existing building", func(t *testing.T) {
		floorPlanRepo := new(mockFloorPlanRepo)
		buildingRepo := new(mockBuildingRepo)
		svc := NewFloorPlanService(floorPlanRepo, buildingRepo)

		buildingRepo.On("FindByID", ctx, 1).Return(&model.Building{ID: 1}, nil).Once()
		floorPlanRepo.On("Create", ctx, model.CreateFloorPlanParams{
			BuildingID: 1,
			FloorName:  "Floor 3",
			ImageURL:   "https://example.com/plan.png",
		}).Return(&model.FloorPlan{ID: 2, BuildingID: 1, FloorName: "Floor 3"}, nil).Once()

		plan, err := svc.Create(ctx, 1, "Floor 3", "https://example.com/plan.png")
		require.NoError(t, err)
		assert.Equal(t, 2, plan.ID)
	})
}
