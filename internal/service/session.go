package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/scanmap/server-go/internal/database"
	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/events"
	"github.com/scanmap/server-go/internal/metrics"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/repository"
)

// Transactor runs a function within a database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

// EventPublisher emits session lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// SessionService owns the scan session lifecycle. At most one session is
// active system-wide: starting a session forcibly ends every prior active
// one inside the same transaction as the insert.
type SessionService struct {
	tx          Transactor
	sessionRepo repository.SessionRepository
	roomRepo    repository.RoomRepository
	broker      EventPublisher
	defaultNode string
}

func NewSessionService(
	tx Transactor,
	sessionRepo repository.SessionRepository,
	roomRepo repository.RoomRepository,
	broker EventPublisher,
	defaultNode string,
) *SessionService {
	return &SessionService{
		tx:          tx,
		sessionRepo: sessionRepo,
		roomRepo:    roomRepo,
		broker:      broker,
		defaultNode: defaultNode,
	}
}

// StartScan ends any currently active session (last writer wins, no error
// for the implicit close) and opens a new one for the room.
func (s *SessionService) StartScan(ctx context.Context, roomID int, node string) (*model.ScanSession, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, apperrors.NotFound("Room")
	}

	if node == "" {
		node = s.defaultNode
	}

	var session *model.ScanSession
	var preempted int64
	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		txRepo := s.sessionRepo.WithTx(tx)

		preempted, err = txRepo.DeactivateAll(ctx)
		if err != nil {
			return fmt.Errorf("deactivate sessions: %w", err)
		}

		session, err = txRepo.Create(ctx, model.CreateSessionParams{
			Node:   node,
			RoomID: roomID,
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if preempted > 0 {
		metrics.SessionEvent(string(events.SessionPreempted))
		log.Info().Int64("count", preempted).Msg("preempted active sessions")
	}
	metrics.SessionEvent(string(events.SessionStarted))
	s.broker.Publish(ctx, events.Event{Type: events.SessionStarted, Session: *session})

	log.Info().
		Int("sessionId", session.ID).
		Int("roomId", roomID).
		Str("node", node).
		Msg("scan session started")

	return session, nil
}

// StopScan ends the most recently started active session for the room.
func (s *SessionService) StopScan(ctx context.Context, roomID int) (*model.ScanSession, error) {
	active, err := s.sessionRepo.FindActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find active session: %w", err)
	}
	if active == nil {
		return nil, apperrors.NotFound("Active session for room")
	}

	ended, err := s.sessionRepo.End(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	if !ended {
		// Lost a race with a preempting start; same outcome for the caller.
		return nil, apperrors.NotFound("Active session for room")
	}

	session, err := s.sessionRepo.FindByID(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}

	metrics.SessionEvent(string(events.SessionStopped))
	s.broker.Publish(ctx, events.Event{Type: events.SessionStopped, Session: *session})

	log.Info().
		Int("sessionId", session.ID).
		Int("roomId", roomID).
		Msg("scan session stopped")

	return session, nil
}

// CurrentActive returns the active session or nil. Reads committed state
// on every call; ingestion depends on this not being cached.
func (s *SessionService) CurrentActive(ctx context.Context) (*model.ScanSession, error) {
	return s.sessionRepo.FindActive(ctx)
}

// List returns all sessions, newest first, enriched with room and
// building names.
func (s *SessionService) List(ctx context.Context) ([]model.SessionWithLocation, error) {
	return s.sessionRepo.ListWithLocation(ctx)
}

// CloseStale ends sessions that have been active longer than maxAge.
// Used by the background job for forgotten sessions.
func (s *SessionService) CloseStale(ctx context.Context, maxAge time.Duration) (int, error) {
	closed, err := s.sessionRepo.EndStale(ctx, maxAge)
	if err != nil {
		return 0, err
	}

	for _, session := range closed {
		metrics.SessionEvent(string(events.SessionAutoStopped))
		s.broker.Publish(ctx, events.Event{Type: events.SessionAutoStopped, Session: session})
		log.Warn().
			Int("sessionId", session.ID).
			Int("roomId", session.RoomID).
			Time("startedAt", session.StartedAt).
			Msg("auto-stopped stale scan session")
	}

	return len(closed), nil
}
