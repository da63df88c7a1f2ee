package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type FloorPlanRepository interface {
	FindByID(ctx context.Context, id int) (*model.FloorPlan, error)
	ListByBuilding(ctx context.Context, buildingID int) ([]model.FloorPlan, error)
	Create(ctx context.Context, params model.CreateFloorPlanParams) (*model.FloorPlan, error)
	// Delete removes the plan; rooms keep existing with floorplan_id nulled.
	Delete(ctx context.Context, id int) (bool, error)
}

type floorPlanRepo struct {
	db DBTX
}

func NewFloorPlanRepository(db *sqlx.DB) FloorPlanRepository {
	return &floorPlanRepo{db: db}
}

func (r *floorPlanRepo) FindByID(ctx context.Context, id int) (*model.FloorPlan, error) {
	var plan model.FloorPlan
	err := r.db.GetContext(ctx, &plan, `
		SELECT * FROM floor_plan WHERE id = $1
	`, id)
	return HandleNotFound(&plan, err)
}

func (r *floorPlanRepo) ListByBuilding(ctx context.Context, buildingID int) ([]model.FloorPlan, error) {
	plans := []model.FloorPlan{}
	err := r.db.SelectContext(ctx, &plans, `
		SELECT * FROM floor_plan
		WHERE building_id = $1
		ORDER BY floor_name
	`, buildingID)
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *floorPlanRepo) Create(ctx context.Context, params model.CreateFloorPlanParams) (*model.FloorPlan, error) {
	var plan model.FloorPlan
	err := r.db.GetContext(ctx, &plan, `
		INSERT INTO floor_plan (building_id, floor_name, image_url)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.BuildingID, params.FloorName, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *floorPlanRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM floor_plan WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
