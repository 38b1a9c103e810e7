package session

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-mall/pkg/sysuser"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client), mr
}

func testUser() *sysuser.SysUser {
	return &sysuser.SysUser{
		ID:       uuid.New(),
		Username: "alice",
		Name:     "Alice",
		Status:   sysuser.StatusNormal,
	}
}

func TestNewTokenFormat(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	token := NewToken()
	assert.Regexp(t, hex32, token)
}

func TestNewTokenUniqueness(t *testing.T) {
	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		token := NewToken()
		require.False(t, seen[token], "token collision after %d draws", i)
		seen[token] = true
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	user := testUser()
	token := NewToken()

	require.NoError(t, store.Create(ctx, token, user, DefaultInitialTTL))

	got, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	// the password digest never enters the cache
	assert.Empty(t, got.Password)

	// the session lives under the namespaced key with the initial TTL
	assert.True(t, mr.Exists("user:login:"+token))
	assert.Equal(t, DefaultInitialTTL, mr.TTL("user:login:"+token))
}

func TestGetMissIsNotError(t *testing.T) {
	store, _ := newTestStore(t)

	got, ok, err := store.Get(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	token := NewToken()

	require.NoError(t, store.Create(ctx, token, testUser(), time.Minute))

	mr.FastForward(time.Minute + time.Second)

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenewExtendsCountdown(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	token := NewToken()

	require.NoError(t, store.Create(ctx, token, testUser(), time.Minute))

	// keep renewing within each window past the original TTL
	for i := 0; i < 3; i++ {
		mr.FastForward(45 * time.Second)
		require.NoError(t, store.Renew(ctx, token, time.Minute))
	}

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("user:login:"+token))
}

func TestRenewAfterExpiryDoesNotResurrect(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	token := NewToken()

	require.NoError(t, store.Create(ctx, token, testUser(), time.Minute))
	mr.FastForward(2 * time.Minute)

	// expired between read and renew: must not error, must stay dead
	require.NoError(t, store.Renew(ctx, token, time.Hour))

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	token := NewToken()

	require.NoError(t, store.Create(ctx, token, testUser(), time.Minute))
	require.NoError(t, store.Delete(ctx, token))

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, token))
}
