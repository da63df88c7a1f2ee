package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/scanmap/server-go/internal/errors"
)

func urlParamInt(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(name, "must be a positive integer")
	}
	return id, nil
}

// parseLimit reads the limit query parameter, falling back to def when it
// is absent or outside (0, max].
func parseLimit(r *http.Request, def, max int) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > max {
		return def
	}
	return limit
}
