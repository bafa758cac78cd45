package assessmenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"qmatrix/internal/domain/assessment"
	"qmatrix/internal/domain/auth"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
)

type Handler struct {
	Store *assessment.Store
}

func NewHandler(store *assessment.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assessments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/", h.handleUpsert)
		r.Get("/log", h.handleListLog)
	})
}

type upsertRequest struct {
	EmployeeID  string `json:"employeeId"`
	SkillID     string `json:"skillId"`
	Level       int    `json:"level"`
	TargetLevel *int   `json:"targetLevel"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.Store.List(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assessment_list_failed", "failed to list assessments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assessments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.EmployeeID == "" || payload.SkillID == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "employeeId and skillId are required", middleware.GetRequestID(r.Context()))
		return
	}
	if !assessment.ValidLevel(payload.Level) {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidLevel, "level must be one of -1, 0, 25, 50, 75, 100", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.TargetLevel != nil && !validTargetLevel(*payload.TargetLevel) {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidLevel, "targetLevel must be between 0 and 100", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.Upsert(r.Context(), payload.EmployeeID, payload.SkillID, payload.Level, payload.TargetLevel); err != nil {
		api.Fail(w, http.StatusInternalServerError, "assessment_write_failed", "failed to write assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"saved": true}, middleware.GetRequestID(r.Context()))
}

// validTargetLevel admits any whole percentage. Unlike observed levels,
// the individual target override is not confined to the assessment scale.
func validTargetLevel(v int) bool {
	return v >= 0 && v <= 100
}

func (h *Handler) handleListLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListLog(r.Context(), r.URL.Query().Get("employeeId"), r.URL.Query().Get("skillId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "log_list_failed", "failed to list assessment log", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
