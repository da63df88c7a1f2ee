package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/scanmap/server-go/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
	exportService  *service.ExportService
}

func NewSessionHandler(
	sessionService *service.SessionService,
	exportService *service.ExportService,
) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		exportService:  exportService,
	}
}

func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/export", h.Export)

	return r
}

// GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// GET /sessions/export
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	report, err := h.exportService.SessionsReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("scan-sessions-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	if _, err := w.Write(report); err != nil {
		log.Warn().Err(err).Msg("failed to write sessions export")
	}
}
