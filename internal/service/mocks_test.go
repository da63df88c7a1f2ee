package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/scanmap/server-go/internal/database"
	"github.com/scanmap/server-go/internal/events"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/repository"
)

type mockScanRepo struct {
	mock.Mock
}

func (m *mockScanRepo) Insert(ctx context.Context, params repository.CreateScanParams) (*model.WifiScan, bool, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.WifiScan), args.Bool(1), args.Error(2)
}

func (m *mockScanRepo) Recent(ctx context.Context, limit int) ([]model.WifiScan, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WifiScan), args.Error(1)
}

func (m *mockScanRepo) ForRoom(ctx context.Context, roomID int, limit int) ([]model.RoomScanRow, error) {
	args := m.Called(ctx, roomID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoomScanRow), args.Error(1)
}

func (m *mockScanRepo) ForBuilding(ctx context.Context, buildingID int, limit int) ([]model.RoomScanRow, error) {
	args := m.Called(ctx, buildingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoomScanRow), args.Error(1)
}

type mockRoomScanRepo struct {
	mock.Mock
}

func (m *mockRoomScanRepo) Create(ctx context.Context, params model.CreateRoomScanParams) (*model.RoomScan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomScan), args.Error(1)
}

func (m *mockRoomScanRepo) CountBySession(ctx context.Context, sessionID int) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id int) (*model.ScanSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanSession), args.Error(1)
}

func (m *mockSessionRepo) FindActive(ctx context.Context) (*model.ScanSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanSession), args.Error(1)
}

func (m *mockSessionRepo) FindActiveByRoom(ctx context.Context, roomID int) (*model.ScanSession, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanSession), args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.ScanSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanSession), args.Error(1)
}

func (m *mockSessionRepo) DeactivateAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) End(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) EndStale(ctx context.Context, olderThan time.Duration) ([]model.ScanSession, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScanSession), args.Error(1)
}

func (m *mockSessionRepo) ListWithLocation(ctx context.Context) ([]model.SessionWithLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SessionWithLocation), args.Error(1)
}

// WithTx returns the mock itself so transactional flows can be exercised
// without a real database.
func (m *mockSessionRepo) WithTx(tx *sqlx.Tx) repository.SessionRepository {
	return m
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id int) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *mockRoomRepo) FindWithBuilding(ctx context.Context, id int) (*model.RoomWithBuilding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomWithBuilding), args.Error(1)
}

func (m *mockRoomRepo) List(ctx context.Context, buildingID *int) ([]model.RoomWithBuilding, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoomWithBuilding), args.Error(1)
}

func (m *mockRoomRepo) Create(ctx context.Context, params model.CreateRoomParams) (*model.Room, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockBuildingRepo struct {
	mock.Mock
}

func (m *mockBuildingRepo) FindByID(ctx context.Context, id int) (*model.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *mockBuildingRepo) FindByName(ctx context.Context, name string) (*model.Building, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *mockBuildingRepo) List(ctx context.Context) ([]model.Building, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Building), args.Error(1)
}

func (m *mockBuildingRepo) Create(ctx context.Context, params model.CreateBuildingParams) (*model.Building, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *mockBuildingRepo) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockFloorPlanRepo struct {
	mock.Mock
}

func (m *mockFloorPlanRepo) FindByID(ctx context.Context, id int) (*model.FloorPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorPlan), args.Error(1)
}

func (m *mockFloorPlanRepo) ListByBuilding(ctx context.Context, buildingID int) ([]model.FloorPlan, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FloorPlan), args.Error(1)
}

func (m *mockFloorPlanRepo) Create(ctx context.Context, params model.CreateFloorPlanParams) (*model.FloorPlan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorPlan), args.Error(1)
}

func (m *mockFloorPlanRepo) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// fakeTransactor runs the callback directly with a nil transaction. The
// session repo mock's WithTx returns itself, so the nil tx is never used.
type fakeTransactor struct{}

func (fakeTransactor) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

// recordingBroker captures published events for assertions.
type recordingBroker struct {
	events []events.Event
}

func (b *recordingBroker) Publish(ctx context.Context, event events.Event) {
	b.events = append(b.events, event)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func intPtr(n int) *int { return &n }
