package cataloghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"qmatrix/internal/domain/auth"
	"qmatrix/internal/domain/catalog"
	"qmatrix/internal/transport/http/api"
	"qmatrix/internal/transport/http/middleware"
)

type Handler struct {
	Service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/categories", h.handleListCategories)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/categories", h.handleCreateCategory)
		r.Get("/subcategories", h.handleListSubCategories)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/subcategories", h.handleCreateSubCategory)
		r.Get("/skills", h.handleListSkills)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/skills", h.handleCreateSkill)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/skills/{skillID}", h.handleUpdateSkill)
	})
	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.handleListRoles)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreateRole)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{roleID}", h.handleUpdateRole)
	})
}

type namedRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload namedRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateCategory(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_create_failed", "failed to create category", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type subCategoryRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

func (h *Handler) handleListSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Service.ListSubCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list subcategories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, subs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var payload subCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" || payload.CategoryID == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name and categoryId are required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateSubCategory(r.Context(), payload.Name, payload.CategoryID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_create_failed", "failed to create subcategory", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type skillRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	SubCategoryID string `json:"subCategoryId"`
}

func (h *Handler) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.Service.ListSkills(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list skills", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, skills, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var payload skillRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" || payload.SubCategoryID == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name and subCategoryId are required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateSkill(r.Context(), payload.Name, payload.Description, payload.SubCategoryID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_create_failed", "failed to create skill", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	var payload skillRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.UpdateSkill(r.Context(), chi.URLParam(r, "skillID"), payload.Name, payload.Description); err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_update_failed", "failed to update skill", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

type roleRequest struct {
	Name           string                    `json:"name"`
	InheritsFromID string                    `json:"inheritsFromId"`
	RequiredSkills []catalog.RoleRequirement `json:"requiredSkills"`
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_list_failed", "failed to list roles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var payload roleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateRole(r.Context(), payload.Name, payload.InheritsFromID, payload.RequiredSkills)
	if err != nil {
		status, code := roleErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var payload roleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Service.UpdateRole(r.Context(), chi.URLParam(r, "roleID"), payload.Name, payload.InheritsFromID, payload.RequiredSkills)
	if err != nil {
		status, code := roleErrorStatus(err)
		api.Fail(w, status, code, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func roleErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidRequirementLevel):
		return http.StatusBadRequest, "invalid_requirement_level"
	case errors.Is(err, catalog.ErrUnknownParentRole):
		return http.StatusBadRequest, "unknown_parent_role"
	case errors.Is(err, catalog.ErrInheritanceCycle):
		return http.StatusConflict, "inheritance_cycle"
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, api.CodeNotFound
	}
	return http.StatusInternalServerError, "role_write_failed"
}
