package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"qmatrix/internal/domain/auth"
	"qmatrix/internal/domain/employee"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
	"qmatrix/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/", h.handleUpdate)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/departure", h.handleScheduleDeparture)
		})
	})
}

type employeeRequest struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Roles      []string `json:"roles"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.Create(r.Context(), payload.Name, payload.Department, payload.Roles)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), payload.Name, payload.Department, payload.Roles)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

type departureRequest struct {
	Date string `json:"date"`
}

func (h *Handler) handleScheduleDeparture(w http.ResponseWriter, r *http.Request) {
	var payload departureRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Date == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "date is required", middleware.GetRequestID(r.Context()))
		return
	}
	at, err := shared.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidDate, "date must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}
	err = h.Store.ScheduleDeparture(r.Context(), chi.URLParam(r, "employeeID"), at)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departure_failed", "failed to schedule departure", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"scheduled": true}, middleware.GetRequestID(r.Context()))
}
