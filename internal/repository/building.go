package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type BuildingRepository interface {
	FindByID(ctx context.Context, id int) (*model.Building, error)
	FindByName(ctx context.Context, name string) (*model.Building, error)
	List(ctx context.Context) ([]model.Building, error)
	Create(ctx context.Context, params model.CreateBuildingParams) (*model.Building, error)
	// Delete removes the building; rooms, sessions and scan links cascade.
	Delete(ctx context.Context, id int) (bool, error)
}

type buildingRepo struct {
	db DBTX
}

func NewBuildingRepository(db *sqlx.DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) FindByID(ctx context.Context, id int) (*model.Building, error) {
	var building model.Building
	err := r.db.GetContext(ctx, &building, `
		SELECT * FROM building WHERE id = $1
	`, id)
	return HandleNotFound(&building, err)
}

func (r *buildingRepo) FindByName(ctx context.Context, name string) (*model.Building, error) {
	var building model.Building
	err := r.db.GetContext(ctx, &building, `
		SELECT * FROM building WHERE name = $1
	`, name)
	return HandleNotFound(&building, err)
}

func (r *buildingRepo) List(ctx context.Context) ([]model.Building, error) {
	buildings := []model.Building{}
	err := r.db.SelectContext(ctx, &buildings, `
		SELECT * FROM building ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

func (r *buildingRepo) Create(ctx context.Context, params model.CreateBuildingParams) (*model.Building, error) {
	var building model.Building
	err := r.db.GetContext(ctx, &building, `
		INSERT INTO building (name, description)
		VALUES ($1, $2)
		RETURNING *
	`, params.Name, params.Description)
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM building WHERE id = $1
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
