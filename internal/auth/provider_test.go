package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testUsers() []User {
	return []User{
		AdminUser("admin-key"),
		{
			APIKey: "scoped-key",
			App:    "CargoHUB Scanner",
			Access: AccessPolicy{
				Resources: map[string]MethodAccess{
					"items":       {Get: true},
					"inventories": {Get: true, Put: true},
				},
			},
		},
	}
}

func TestResolveWithoutCache(t *testing.T) {
	p := NewProvider(testUsers(), nil, time.Minute, slog.Default())

	u, ok := p.Resolve(context.Background(), "admin-key")
	require.True(t, ok)
	require.Equal(t, "CargoHUB Dashboard", u.App)

	_, ok = p.Resolve(context.Background(), "unknown")
	require.False(t, ok)

	_, ok = p.Resolve(context.Background(), "")
	require.False(t, ok)
}

func TestResolveCachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	p := NewProvider(testUsers(), client, time.Minute, slog.Default())

	u, ok := p.Resolve(context.Background(), "scoped-key")
	require.True(t, ok)
	require.Equal(t, "CargoHUB Scanner", u.App)
	require.True(t, mr.Exists("cargohub:apikey:scoped-key"))

	// A second resolve is served from the cache.
	again, ok := p.Resolve(context.Background(), "scoped-key")
	require.True(t, ok)
	require.Equal(t, u, again)

	// Unknown keys are never cached.
	_, ok = p.Resolve(context.Background(), "unknown")
	require.False(t, ok)
	require.False(t, mr.Exists("cargohub:apikey:unknown"))
}

func TestHasAccess(t *testing.T) {
	p := NewProvider(testUsers(), nil, time.Minute, slog.Default())

	admin, _ := p.Resolve(context.Background(), "admin-key")
	scoped, _ := p.Resolve(context.Background(), "scoped-key")

	require.True(t, p.HasAccess(admin, "warehouses", "delete"))
	require.True(t, p.HasAccess(scoped, "items", "get"))
	require.False(t, p.HasAccess(scoped, "items", "post"))
	require.True(t, p.HasAccess(scoped, "inventories", "put"))
	require.False(t, p.HasAccess(scoped, "warehouses", "get"))
}
