package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scanmap/server-go/internal/service"
)

type FloorPlanHandler struct {
	floorPlanService *service.FloorPlanService
}

func NewFloorPlanHandler(floorPlanService *service.FloorPlanService) *FloorPlanHandler {
	return &FloorPlanHandler{floorPlanService: floorPlanService}
}

func (h *FloorPlanHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Delete("/{floorplanID}", h.Delete)

	return r
}

// DELETE /floorplans/{floorplanID}
func (h *FloorPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	floorplanID, err := urlParamInt(r, "floorplanID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.floorPlanService.Delete(r.Context(), floorplanID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": floorplanID})
}
