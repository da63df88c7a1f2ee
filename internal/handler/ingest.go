package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/service"
)

type IngestHandler struct {
	ingestService *service.IngestService
}

func NewIngestHandler(ingestService *service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// POST /ingest
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var reports []model.ScanReport
	if err := json.NewDecoder(r.Body).Decode(&reports); err != nil {
		writeError(w, apperrors.ValidationError("Payload must be a non-empty array"))
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), reports)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
