package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-mall/pkg/authctx"
	"github.com/tendant/simple-mall/pkg/session"
	"github.com/tendant/simple-mall/pkg/sysuser"
)

func newTestStore(t *testing.T) (*session.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewStore(client), mr
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, interface{}) {
	t.Helper()
	var res struct {
		Code int         `json:"code"`
		Data interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Code, res.Data
}

func TestAuthenticatorAdmitsValidToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	alice := &sysuser.SysUser{ID: uuid.New(), Username: "alice"}
	token := session.NewToken()
	require.NoError(t, store.Create(ctx, token, alice, session.DefaultInitialTTL))

	var seen *sysuser.SysUser
	handler := Authenticator(store, 30*time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = authctx.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysRole/findByPage/1/10", nil)
	r.Header.Set(TokenHeader, token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, alice.ID, seen.ID)
	assert.Equal(t, "alice", seen.Username)

	// the sliding window replaced the initial TTL
	assert.Equal(t, 30*time.Minute, mr.TTL("user:login:"+token))
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	store, _ := newTestStore(t)

	invoked := false
	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, invoked)
	code, data := decodeEnvelope(t, w)
	assert.Equal(t, 208, code)
	assert.Nil(t, data)
}

func TestAuthenticatorRejectsUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	invoked := false
	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	r.Header.Set(TokenHeader, "bogus")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, invoked)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 208, code)
}

func TestAuthenticatorRedisOutageIsNotLogout(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token := session.NewToken()
	require.NoError(t, store.Create(ctx, token, &sysuser.SysUser{ID: uuid.New()}, time.Hour))

	// backend down: the valid token must not be answered as "not logged in"
	mr.Close()

	invoked := false
	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	r.Header.Set(TokenHeader, token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, invoked)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 500, code)
}

func TestAuthenticatorRejectsExpiredToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token := session.NewToken()
	require.NoError(t, store.Create(ctx, token, &sysuser.SysUser{ID: uuid.New()}, time.Minute))
	mr.FastForward(2 * time.Minute)

	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired session")
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	r.Header.Set(TokenHeader, token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 208, code)
}

func TestAuthenticatorAdmitsPreflight(t *testing.T) {
	store, _ := newTestStore(t)

	invoked := false
	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		// a preflight carries no identity
		_, ok := authctx.IdentityFromContext(r.Context())
		assert.False(t, ok)
	}))

	r := httptest.NewRequest(http.MethodOptions, "/admin/system/sysUser/saveSysUser", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, invoked)
}

func TestIdentityDoesNotLeakAcrossRequests(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token := session.NewToken()
	require.NoError(t, store.Create(ctx, token, &sysuser.SysUser{ID: uuid.New(), Username: "alice"}, time.Hour))

	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// an authenticated request...
	r1 := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	r1.Header.Set(TokenHeader, token)
	handler.ServeHTTP(httptest.NewRecorder(), r1)

	// ...leaves nothing behind for the next, unauthenticated one
	r2 := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r2)
	code, _ := decodeEnvelope(t, w2)
	assert.Equal(t, 208, code)

	// and the original request's context is gone with the request
	_, ok := authctx.IdentityFromContext(r1.Context())
	assert.False(t, ok)
}

func TestAuthenticatorPanicStillReleasesIdentity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token := session.NewToken()
	require.NoError(t, store.Create(ctx, token, &sysuser.SysUser{ID: uuid.New()}, time.Hour))

	handler := Authenticator(store, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	}))

	r := httptest.NewRequest("GET", "/admin/system/sysUser/findByPage/1/10", nil)
	r.Header.Set(TokenHeader, token)
	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), r)
	})

	// the identity lived only on the derived context inside ServeHTTP
	_, ok := authctx.IdentityFromContext(r.Context())
	assert.False(t, ok)
}
