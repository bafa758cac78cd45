package qualificationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"qmatrix/internal/domain/assessment"
	"qmatrix/internal/domain/auth"
	"qmatrix/internal/domain/qualification"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
	"qmatrix/internal/transport/http/shared"
)

type Handler struct {
	Service *qualification.Service
}

func NewHandler(service *qualification.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/plans", func(r chi.Router) {
		r.Get("/", h.handleListPlans)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreatePlan)
		r.Route("/{planID}", func(r chi.Router) {
			r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/status", h.handleUpdatePlanStatus)
			r.Get("/measures", h.handleListMeasures)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/measures", h.handleCreateMeasure)
		})
	})
	r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/measures/{measureID}", h.handleUpdateMeasure)
}

type planRequest struct {
	EmployeeID   string `json:"employeeId"`
	TargetRoleID string `json:"targetRoleId"`
	Status       string `json:"status"`
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.ListPlans(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_list_failed", "failed to list plans", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var payload planRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreatePlan(r.Context(), payload.EmployeeID, payload.TargetRoleID, payload.Status)
	if err != nil {
		status, code := planErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type planStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdatePlanStatus(w http.ResponseWriter, r *http.Request) {
	var payload planStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "status is required", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Service.UpdatePlanStatus(r.Context(), chi.URLParam(r, "planID"), payload.Status)
	if err != nil {
		status, code := planErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

type measureRequest struct {
	SkillID      string `json:"skillId"`
	CurrentLevel int    `json:"currentLevel"`
	TargetLevel  int    `json:"targetLevel"`
	Status       string `json:"status"`
	TargetDate   string `json:"targetDate"`
}

func (h *Handler) handleListMeasures(w http.ResponseWriter, r *http.Request) {
	measures, err := h.Service.ListMeasures(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "measure_list_failed", "failed to list measures", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, measures, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateMeasure(w http.ResponseWriter, r *http.Request) {
	measure, ok := h.decodeMeasure(w, r)
	if !ok {
		return
	}
	measure.PlanID = chi.URLParam(r, "planID")
	id, err := h.Service.CreateMeasure(r.Context(), measure)
	if err != nil {
		status, code := planErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateMeasure(w http.ResponseWriter, r *http.Request) {
	measure, ok := h.decodeMeasure(w, r)
	if !ok {
		return
	}
	measure.ID = chi.URLParam(r, "measureID")
	err := h.Service.UpdateMeasure(r.Context(), measure)
	if err != nil {
		status, code := planErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) decodeMeasure(w http.ResponseWriter, r *http.Request) (qualification.Measure, bool) {
	var payload measureRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.SkillID == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "skillId is required", middleware.GetRequestID(r.Context()))
		return qualification.Measure{}, false
	}
	measure := qualification.Measure{
		SkillID:      payload.SkillID,
		CurrentLevel: payload.CurrentLevel,
		TargetLevel:  payload.TargetLevel,
		Status:       payload.Status,
	}
	if payload.TargetDate != "" {
		at, err := shared.ParseDate(payload.TargetDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, api.CodeInvalidDate, "targetDate must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return qualification.Measure{}, false
		}
		measure.TargetDate = &at
	}
	return measure, true
}

func planErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, qualification.ErrUnknownPlanStatus):
		return http.StatusBadRequest, "unknown_plan_status"
	case errors.Is(err, qualification.ErrUnknownMeasureStatus):
		return http.StatusBadRequest, "unknown_measure_status"
	case errors.Is(err, assessment.ErrInvalidLevel):
		return http.StatusBadRequest, api.CodeInvalidLevel
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, api.CodeNotFound
	}
	return http.StatusInternalServerError, "plan_write_failed"
}
