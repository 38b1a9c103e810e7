package sysrole

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-mall/pkg/result"
)

// Handle handles HTTP requests for role management
type Handle struct {
	roleService *RoleService
}

func NewHandle(roleService *RoleService) Handle {
	return Handle{
		roleService: roleService,
	}
}

// RegisterRoutes registers the system role routes
func (h Handle) RegisterRoutes(r chi.Router) {
	r.Route("/sysRole", func(r chi.Router) {
		r.Get("/findByPage/{pageNum}/{pageSize}", h.FindByPage)
		r.Post("/saveSysRole", h.Save)
		r.Put("/updateSysRole", h.Update)
		r.Delete("/deleteById/{id}", h.Delete)
	})
}

// pageParam parses a positive page path value; out-of-range input falls back to 1
func pageParam(r *http.Request, name string) int32 {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil || value < 1 {
		return 1
	}
	return int32(value)
}

// FindByPage handles the paginated role search
// (GET /sysRole/findByPage/{pageNum}/{pageSize})
func (h Handle) FindByPage(w http.ResponseWriter, r *http.Request) {
	params := FindByPageParams{
		RoleName: r.URL.Query().Get("roleName"),
		PageNum:  pageParam(r, "pageNum"),
		PageSize: pageParam(r, "pageSize"),
	}

	page, err := h.roleService.FindByPage(r.Context(), params)
	if err != nil {
		slog.Error("Failed finding roles by page", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(page))
}

// Save handles creating a new role
// (POST /sysRole/saveSysRole)
func (h Handle) Save(w http.ResponseWriter, r *http.Request) {
	data := CreateRoleParams{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		slog.Error("Failed parsing create role body", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	role, err := h.roleService.CreateRole(r.Context(), data)
	if err != nil {
		slog.Error("Failed creating role", "roleName", data.RoleName, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(role))
}

// updateRoleRequest is the wire shape of the update body; copier maps it onto
// the service params by field name
type updateRoleRequest struct {
	ID          string  `json:"id"`
	RoleName    *string `json:"role_name,omitempty"`
	RoleCode    *string `json:"role_code,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update handles updating an existing role
// (PUT /sysRole/updateSysRole)
func (h Handle) Update(w http.ResponseWriter, r *http.Request) {
	data := updateRoleRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		slog.Error("Failed parsing update role body", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	id, err := uuid.Parse(data.ID)
	if err != nil {
		slog.Error("Invalid role id", "id", data.ID, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	params := UpdateRoleParams{}
	copier.Copy(&params, data)
	role, err := h.roleService.UpdateRole(r.Context(), id, params)
	if err != nil {
		if !errors.Is(err, ErrRoleNotFound) {
			slog.Error("Failed updating role", "id", id, "err", err)
		}
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(role))
}

// Delete handles deleting a role
// (DELETE /sysRole/deleteById/{id})
func (h Handle) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Invalid role id", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	if err := h.roleService.DeleteRole(r.Context(), id); err != nil {
		slog.Error("Failed deleting role", "id", id, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(nil))
}
