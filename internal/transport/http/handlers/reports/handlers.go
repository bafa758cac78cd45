package reportshandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"qmatrix/internal/domain/export"
	"qmatrix/internal/domain/projection"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
	"qmatrix/internal/transport/http/shared"
)

type Handler struct {
	Service           *projection.Service
	MaxForecastMonths int
}

func NewHandler(service *projection.Service, maxForecastMonths int) *Handler {
	return &Handler{Service: service, MaxForecastMonths: maxForecastMonths}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/matrix", h.handleMatrix)
		r.Get("/matrix/export.pdf", h.handleExportPDF)
		r.Get("/forecast", h.handleForecast)
	})
}

func (h *Handler) handleMatrix(w http.ResponseWriter, r *http.Request) {
	at, err := shared.ParseInstant(r, "at")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidDate, "at must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Service.MatrixReport(r.Context(), at)
	if err != nil {
		status, code := reportErrorStatus(err)
		api.Fail(w, status, code, "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			api.Fail(w, http.StatusBadRequest, "invalid_months", "months must be a positive integer", middleware.GetRequestID(r.Context()))
			return
		}
		months = parsed
	}
	if h.MaxForecastMonths > 0 && months > h.MaxForecastMonths {
		api.Fail(w, http.StatusBadRequest, "invalid_months",
			fmt.Sprintf("months must not exceed %d", h.MaxForecastMonths), middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Service.ForecastReport(r.Context(), months)
	if err != nil {
		status, code := reportErrorStatus(err)
		api.Fail(w, status, code, "failed to build forecast", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.MatrixReport(r.Context(), nil)
	if err != nil {
		status, code := reportErrorStatus(err)
		api.Fail(w, status, code, "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	pseudonymize := r.URL.Query().Get("pseudonymize") == "true"
	payload, err := export.MatrixPDF(report, pseudonymize)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
		return
	}

	api.Binary(w, "application/pdf", "qualification-matrix.pdf", payload)
}

func reportErrorStatus(err error) (int, string) {
	if errors.Is(err, projection.ErrRoleCycle) {
		return http.StatusConflict, "role_cycle"
	}
	return http.StatusInternalServerError, "report_failed"
}
