package handler

import (
	"net/http"

	"github.com/scanmap/server-go/internal/config"
	"github.com/scanmap/server-go/internal/service"
)

type ScanHandler struct {
	scanService *service.ScanService
}

func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// GET /wifi/recent?limit=
func (h *ScanHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, config.RecentScansDefaultLimit, config.RecentScansMaxLimit)

	scans, err := h.scanService.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rows": scans})
}
