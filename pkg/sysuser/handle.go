package sysuser

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-mall/pkg/result"
)

// Handle handles HTTP requests for system user management
type Handle struct {
	userService *UserService
}

// NewHandle creates a new user handler
func NewHandle(userService *UserService) Handle {
	return Handle{
		userService: userService,
	}
}

// RegisterRoutes registers the system user routes
func (h Handle) RegisterRoutes(r chi.Router) {
	r.Route("/sysUser", func(r chi.Router) {
		r.Get("/findByPage/{pageNum}/{pageSize}", h.FindByPage)
		r.Post("/saveSysUser", h.Save)
		r.Put("/updateSysUser", h.Update)
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

// timeParam parses an optional RFC 3339 or date-only query parameter
func timeParam(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	slog.Warn("Ignoring unparseable time filter", "name", name, "value", raw)
	return nil
}

// FindByPage handles the paginated user search
// (GET /sysUser/findByPage/{pageNum}/{pageSize})
func (h Handle) FindByPage(w http.ResponseWriter, r *http.Request) {
	params := FindByPageParams{
		Keyword:         r.URL.Query().Get("keyword"),
		CreateTimeBegin: timeParam(r, "createTimeBegin"),
		CreateTimeEnd:   timeParam(r, "createTimeEnd"),
		PageNum:         pageParam(r, "pageNum"),
		PageSize:        pageParam(r, "pageSize"),
	}

	page, err := h.userService.FindByPage(r.Context(), params)
	if err != nil {
		slog.Error("Failed finding users by page", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(page))
}

// Save handles creating a new system user
// (POST /sysUser/saveSysUser)
func (h Handle) Save(w http.ResponseWriter, r *http.Request) {
	data := CreateUserParams{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		slog.Error("Failed parsing create user body", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), data)
	if err != nil {
		slog.Error("Failed creating user", "username", data.Username, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(user))
}

// updateUserRequest is the wire shape of the update body; copier maps it onto
// the service params by field name
type updateUserRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *int32  `json:"status,omitempty"`
}

// Update handles updating an existing system user
// (PUT /sysUser/updateSysUser)
func (h Handle) Update(w http.ResponseWriter, r *http.Request) {
	data := updateUserRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		slog.Error("Failed parsing update user body", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	id, err := uuid.Parse(data.ID)
	if err != nil {
		slog.Error("Invalid user id", "id", data.ID, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	params := UpdateUserParams{}
	copier.Copy(&params, data)
	user, err := h.userService.UpdateUser(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			result.Render(w, r, result.Fail(result.CodeFail))
			return
		}
		slog.Error("Failed updating user", "id", id, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(user))
}

// Delete handles deleting a system user
// (DELETE /sysUser/deleteById/{id})
func (h Handle) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Invalid user id", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		slog.Error("Failed deleting user", "id", id, "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(nil))
}
