package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scanmap/server-go/internal/config"
	apperrors "github.com/scanmap/server-go/internal/errors"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/service"
)

type RoomHandler struct {
	roomService    *service.RoomService
	sessionService *service.SessionService
	scanService    *service.ScanService
}

func NewRoomHandler(
	roomService *service.RoomService,
	sessionService *service.SessionService,
	scanService *service.ScanService,
) *RoomHandler {
	return &RoomHandler{
		roomService:    roomService,
		sessionService: sessionService,
		scanService:    scanService,
	}
}

func (h *RoomHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{roomID}", h.Get)
	r.Delete("/{roomID}", h.Delete)
	r.Post("/{roomID}/start-scan", h.StartScan)
	r.Post("/{roomID}/stop-scan", h.StopScan)
	r.Get("/{roomID}/wifi", h.Wifi)

	return r
}

type createRoomRequest struct {
	Name       string   `json:"name"`
	BuildingID int      `json:"building_id"`
	Floor      *string  `json:"floor"`
	RoomType   *string  `json:"room_type"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
}

// POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid JSON body"))
		return
	}
	if req.BuildingID <= 0 {
		writeError(w, apperrors.MissingRequired("building_id"))
		return
	}

	room, err := h.roomService.Create(r.Context(), model.CreateRoomParams{
		Name:       req.Name,
		BuildingID: req.BuildingID,
		Floor:      req.Floor,
		RoomType:   req.RoomType,
		X:          req.X,
		Y:          req.Y,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// GET /rooms?building_id=
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	var buildingID *int
	if raw := r.URL.Query().Get("building_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			writeError(w, apperrors.InvalidInput("building_id", "must be a positive integer"))
			return
		}
		buildingID = &id
	}

	rooms, err := h.roomService.List(r.Context(), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

// GET /rooms/{roomID}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID, err := urlParamInt(r, "roomID")
	if err != nil {
		writeError(w, err)
		return
	}

	room, err := h.roomService.Get(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// DELETE /rooms/{roomID}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, err := urlParamInt(r, "roomID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.roomService.Delete(r.Context(), roomID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": roomID})
}

type startScanRequest struct {
	Node string `json:"node"`
}

// POST /rooms/{roomID}/start-scan
func (h *RoomHandler) StartScan(w http.ResponseWriter, r *http.Request) {
	roomID, err := urlParamInt(r, "roomID")
	if err != nil {
		writeError(w, err)
		return
	}

	// Body is optional; an empty or absent body starts with the default node.
	var req startScanRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := h.sessionService.StartScan(r.Context(), roomID, req.Node)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

// POST /rooms/{roomID}/stop-scan
func (h *RoomHandler) StopScan(w http.ResponseWriter, r *http.Request) {
	roomID, err := urlParamInt(r, "roomID")
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.sessionService.StopScan(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

// GET /rooms/{roomID}/wifi?limit=
func (h *RoomHandler) Wifi(w http.ResponseWriter, r *http.Request) {
	roomID, err := urlParamInt(r, "roomID")
	if err != nil {
		writeError(w, err)
		return
	}

	limit := parseLimit(r, config.RoomScansDefaultLimit, config.RoomScansMaxLimit)

	result, err := h.scanService.RoomScans(r.Context(), roomID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
