package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/export"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/service"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/view"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ViewHandler struct {
	service *service.ViewService
}

func NewViewHandler(svc *service.ViewService) *ViewHandler {
	return &ViewHandler{service: svc}
}

func (h *ViewHandler) Register(r chi.Router) {
	r.Get("/timetable/view", h.handleView)
	r.Get("/timetable/view/export", h.handleExport)
	r.Get("/timetable/palette", h.handlePalette)
}

type viewResponse struct {
	Rows         []domain.DisplayRow `json:"rows"`
	TotalCourses int                 `json:"total_courses"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"page_size"`
}

func (h *ViewHandler) handleView(w http.ResponseWriter, r *http.Request) {
	sel, q, requesterID, ok := parseViewRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.TimetableView(r.Context(), requesterID, sel, q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewResponse{
		Rows:         result.Rows,
		TotalCourses: result.TotalCourses,
		Page:         q.Page,
		PageSize:     q.PageSize,
	})
}

func (h *ViewHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	sel, q, requesterID, ok := parseViewRequest(w, r)
	if !ok {
		return
	}

	// The export carries the whole filtered view, not one page.
	q.Page = 1
	q.PageSize = 0

	result, err := h.service.TimetableView(r.Context(), requesterID, sel, q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	file, err := export.Workbook(result.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="timetable.xlsx"`)
	if err := file.Write(w); err != nil {
		// Headers are gone already; nothing to do but drop the connection.
		return
	}
}

type paletteResponse struct {
	Light []view.Style `json:"light"`
	Dark  []view.Style `json:"dark"`
}

func (h *ViewHandler) handlePalette(w http.ResponseWriter, _ *http.Request) {
	light, dark := view.Palette()
	writeJSON(w, http.StatusOK, paletteResponse{Light: light, Dark: dark})
}

func parseViewRequest(w http.ResponseWriter, r *http.Request) (domain.Selection, service.Query, uuid.UUID, bool) {
	query := r.URL.Query()

	sel := domain.Selection{
		MajorID:      intParam(query.Get("major_id")),
		AcademicYear: intParam(query.Get("year")),
		Term:         intParam(query.Get("term")),
	}
	if sel.MajorID <= 0 || sel.AcademicYear <= 0 || sel.Term <= 0 {
		writeError(w, http.StatusBadRequest)
		return domain.Selection{}, service.Query{}, uuid.Nil, false
	}

	page := intParam(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := intParam(query.Get("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	q := service.Query{
		Search:   query.Get("search"),
		OnlyMine: boolParam(query.Get("only_mine")),
		SortKey:  view.ParseSortKey(query.Get("sort")),
		Page:     page,
		PageSize: pageSize,
		Expanded: parseExpanded(query.Get("expanded")),
	}

	requesterID := uuid.Nil
	if q.OnlyMine {
		userIDHeader := r.Header.Get("X-User-ID")
		if userIDHeader == "" {
			writeError(w, http.StatusBadRequest)
			return domain.Selection{}, service.Query{}, uuid.Nil, false
		}
		parsed, err := uuid.Parse(userIDHeader)
		if err != nil {
			writeError(w, http.StatusBadRequest)
			return domain.Selection{}, service.Query{}, uuid.Nil, false
		}
		requesterID = parsed
	}

	return sel, q, requesterID, true
}

func intParam(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return parsed
}

func boolParam(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// parseExpanded reads the comma-separated expanded course ids. Malformed
// entries are skipped; expansion state is advisory, never an error.
func parseExpanded(value string) map[int]struct{} {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	expanded := make(map[int]struct{})
	for _, part := range strings.Split(value, ",") {
		if id := intParam(part); id > 0 {
			expanded[id] = struct{}{}
		}
	}
	return expanded
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound)
	case errors.Is(err, service.ErrUnavailable):
		writeError(w, http.StatusBadGateway)
	default:
		writeError(w, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("{}"))
}
