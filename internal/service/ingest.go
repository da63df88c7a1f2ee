package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/metrics"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/repository"
)

type IngestResult struct {
	Accepted int `json:"accepted"`
	Total    int `json:"total"`
}

// IngestService drives a batch of raw scan reports through storage and
// room tagging. Storage is the durable contract: a scan counts as accepted
// once its row is committed, whether or not tagging succeeds afterwards.
type IngestService struct {
	scanRepo    repository.ScanRepository
	linkRepo    repository.RoomScanRepository
	sessionRepo repository.SessionRepository
}

func NewIngestService(
	scanRepo repository.ScanRepository,
	linkRepo repository.RoomScanRepository,
	sessionRepo repository.SessionRepository,
) *IngestService {
	return &IngestService{
		scanRepo:    scanRepo,
		linkRepo:    linkRepo,
		sessionRepo: sessionRepo,
	}
}

// Ingest stores each report and, while a session is active, tags accepted
// scans with the session's room. The active session is resolved once per
// batch. Per-item failures (dedup rejections, bad fields, link failures)
// never abort the batch.
func (s *IngestService) Ingest(ctx context.Context, reports []model.ScanReport) (*IngestResult, error) {
	if len(reports) == 0 {
		metrics.IngestBatch("invalid")
		return nil, apperrors.ValidationError("Payload must be a non-empty array")
	}

	session, err := s.sessionRepo.FindActive(ctx)
	if err != nil {
		// Raw capture must not depend on tagging; store unlinked.
		log.Error().Err(err).Msg("active session lookup failed, storing scans unlinked")
		session = nil
	}

	accepted := 0
	for _, report := range reports {
		scan, ok, err := s.storeScan(ctx, report)
		if err != nil {
			metrics.ScanInsertError()
			log.Error().Err(err).Msg("failed to store scan")
			continue
		}
		if !ok {
			metrics.ScanDuplicate()
			continue
		}

		accepted++
		metrics.ScanAccepted()

		if session != nil {
			s.link(ctx, scan, session)
		}
	}

	metrics.IngestBatch("ok")

	log.Info().
		Int("accepted", accepted).
		Int("total", len(reports)).
		Bool("linked", session != nil).
		Msg("ingested scan batch")

	return &IngestResult{Accepted: accepted, Total: len(reports)}, nil
}

func (s *IngestService) storeScan(ctx context.Context, report model.ScanReport) (*model.WifiScan, bool, error) {
	if report.BSSID == nil || *report.BSSID == "" {
		return nil, false, apperrors.MissingRequired("bssid")
	}
	if report.Ts == nil {
		return nil, false, apperrors.MissingRequired("ts")
	}

	return s.scanRepo.Insert(ctx, repository.CreateScanParams{
		Node:       report.Node,
		DeviceTsMs: report.Ts,
		SSID:       report.SSID,
		BSSID:      report.BSSID,
		RSSI:       report.RSSI,
		Channel:    report.Channel,
		Enc:        report.Enc,
	})
}

// link writes the room tag for an already-committed scan. Failures are
// swallowed here: the scan row is authoritative and is never rolled back.
func (s *IngestService) link(ctx context.Context, scan *model.WifiScan, session *model.ScanSession) {
	_, err := s.linkRepo.Create(ctx, model.CreateRoomScanParams{
		WifiScanID: scan.ID,
		SessionID:  session.ID,
		RoomID:     session.RoomID,
	})
	if err != nil {
		metrics.LinkFailure()
		log.Warn().
			Err(err).
			Int64("scanId", scan.ID).
			Int("sessionId", session.ID).
			Int("roomId", session.RoomID).
			Msg("failed to link scan to session")
	}
}
