package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scanmap/server-go/internal/config"
	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/service"
)

type BuildingHandler struct {
	buildingService  *service.BuildingService
	scanService      *service.ScanService
	floorPlanService *service.FloorPlanService
}

func NewBuildingHandler(
	buildingService *service.BuildingService,
	scanService *service.ScanService,
	floorPlanService *service.FloorPlanService,
) *BuildingHandler {
	return &BuildingHandler{
		buildingService:  buildingService,
		scanService:      scanService,
		floorPlanService: floorPlanService,
	}
}

func (h *BuildingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{buildingID}", h.Get)
	r.Delete("/{buildingID}", h.Delete)
	r.Get("/{buildingID}/wifi", h.Wifi)
	r.Post("/{buildingID}/floorplans", h.CreateFloorPlan)
	r.Get("/{buildingID}/floorplans", h.ListFloorPlans)

	return r
}

type createBuildingRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// POST /buildings
func (h *BuildingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}

	building, err := h.buildingService.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"building": building})
}

// GET /buildings
func (h *BuildingHandler) List(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.buildingService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"buildings": buildings})
}

// GET /buildings/{buildingID}
func (h *BuildingHandler) Get(w http.ResponseWriter, r *http.Request) {
	buildingID, err := urlParamInt(r, "buildingID")
	if err != nil {
		writeError(w, err)
		return
	}

	building, err := h.buildingService.Get(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"building": building})
}

// DELETE /buildings/{buildingID}
func (h *BuildingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	buildingID, err := urlParamInt(r, "buildingID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.buildingService.Delete(r.Context(), buildingID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": buildingID})
}

// GET /buildings/{buildingID}/wifi?limit=
func (h *BuildingHandler) Wifi(w http.ResponseWriter, r *http.Request) {
	buildingID, err := urlParamInt(r, "buildingID")
	if err != nil {
		writeError(w, err)
		return
	}

	limit := parseLimit(r, config.BuildingScansDefaultLimit, config.BuildingScansMaxLimit)

	result, err := h.scanService.BuildingScans(r.Context(), buildingID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type createFloorPlanRequest struct {
	FloorName string `json:"floor_name"`
	ImageURL  string `json:"image_url"`
}

// POST /buildings/{buildingID}/floorplans
func (h *BuildingHandler) CreateFloorPlan(w http.ResponseWriter, r *http.Request) {
	buildingID, err := urlParamInt(r, "buildingID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createFloorPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}

	plan, err := h.floorPlanService.Create(r.Context(), buildingID, req.FloorName, req.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"floorplan": plan})
}

// GET /buildings/{buildingID}/floorplans
func (h *BuildingHandler) ListFloorPlans(w http.ResponseWriter, r *http.Request) {
	buildingID, err := urlParamInt(r, "buildingID")
	if err != nil {
		writeError(w, err)
		return
	}

	plans, err := h.floorPlanService.ListByBuilding(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}

	building, err := h.buildingService.Get(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"building":   building,
		"floorplans": plans,
	})
}
