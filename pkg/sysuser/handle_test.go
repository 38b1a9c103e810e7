package sysuser

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *UserService) {
	t.Helper()
	service := NewUserService(NewInMemoryUserRepository())
	router := chi.NewRouter()
	NewHandle(service).RegisterRoutes(router)
	return router, service
}

func TestUpdateHandlerMapsBody(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := context.Background()

	created, err := service.CreateUser(ctx, CreateUserParams{
		Username: "alice",
		Password: "111111",
		Phone:    "13800000000",
	})
	require.NoError(t, err)

	body := `{"id":"` + created.ID.String() + `","name":"Alice Lee","status":0}`
	req := httptest.NewRequest("PUT", "/sysUser/updateSysUser", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var res struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 200, res.Code)

	updated, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Lee", updated.Name)
	assert.Equal(t, StatusDisabled, updated.Status)
	// fields absent from the body stay untouched
	assert.Equal(t, "13800000000", updated.Phone)
}

func TestFindByPageHandlerOutOfRangePage(t *testing.T) {
	router, service := newTestRouter(t)

	_, err := service.CreateUser(context.Background(), CreateUserParams{Username: "alice", Password: "x"})
	require.NoError(t, err)

	// a page number beyond int32 falls back to the first page instead of
	// reaching the repository as a negative offset
	req := httptest.NewRequest("GET", "/sysUser/findByPage/5000000000/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var res struct {
		Code int `json:"code"`
		Data struct {
			Items []SysUser `json:"items"`
			Total int64     `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 200, res.Code)
	assert.Len(t, res.Data.Items, 1)
	assert.Equal(t, int64(1), res.Data.Total)
}
