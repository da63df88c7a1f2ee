package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id int) (*model.ScanSession, error)
	// FindActive returns the most recently started active session, or nil.
	// Always reads committed state; the ingestion path depends on this not
	// being cached.
	FindActive(ctx context.Context) (*model.ScanSession, error)
	FindActiveByRoom(ctx context.Context, roomID int) (*model.ScanSession, error)
	Create(ctx context.Context, params model.CreateSessionParams) (*model.ScanSession, error)
	// DeactivateAll ends every active session, regardless of room.
	DeactivateAll(ctx context.Context) (int64, error)
	// End closes the given session if it is still active.
	End(ctx context.Context, id int) (bool, error)
	EndStale(ctx context.Context, olderThan time.Duration) ([]model.ScanSession, error)
	ListWithLocation(ctx context.Context) ([]model.SessionWithLocation, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SessionRepository
}

type sessionRepo struct {
	db DBTX
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) WithTx(tx *sqlx.Tx) SessionRepository {
	return &sessionRepo{db: tx}
}

func (r *sessionRepo) FindByID(ctx context.Context, id int) (*model.ScanSession, error) {
	var session model.ScanSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM scan_session WHERE id = $1
	`, id)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) FindActive(ctx context.Context) (*model.ScanSession, error) {
	var session model.ScanSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM scan_session
		WHERE is_active
		ORDER BY started_at DESC
		LIMIT 1
	`)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) FindActiveByRoom(ctx context.Context, roomID int) (*model.ScanSession, error) {
	var session model.ScanSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM scan_session
		WHERE room_id = $1 AND is_active
		ORDER BY started_at DESC
		LIMIT 1
	`, roomID)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.ScanSession, error) {
	var session model.ScanSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO scan_session (node, room_id)
		VALUES ($1, $2)
		RETURNING *
	`, params.Node, params.RoomID)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) DeactivateAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE scan_session SET
			is_active = false,
			ended_at = NOW()
		WHERE is_active
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *sessionRepo) End(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE scan_session SET
			is_active = false,
			ended_at = NOW()
		WHERE id = $1 AND is_active
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

func (r *sessionRepo) EndStale(ctx context.Context, olderThan time.Duration) ([]model.ScanSession, error) {
	closed := []model.ScanSession{}
	err := r.db.SelectContext(ctx, &closed, `
		UPDATE scan_session SET
			is_active = false,
			ended_at = NOW()
		WHERE is_active AND started_at < NOW() - make_interval(secs => $1)
		RETURNING *
	`, olderThan.Seconds())
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (r *sessionRepo) ListWithLocation(ctx context.Context) ([]model.SessionWithLocation, error) {
	sessions := []model.SessionWithLocation{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT ss.*, rm.name AS room_name, b.id AS building_id, b.name AS building_name
		FROM scan_session ss
		JOIN room rm ON rm.id = ss.room_id
		JOIN building b ON b.id = rm.building_id
		ORDER BY ss.started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
