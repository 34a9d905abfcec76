// Package auth resolves API keys to callers and enforces per-resource
// access. Keys live in a JSON file next to the entity data; resolved
// callers are cached in Redis so the file is only consulted on a miss.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// MethodAccess grants individual HTTP methods on one resource.
type MethodAccess struct {
	Get    bool `json:"get"`
	Post   bool `json:"post"`
	Put    bool `json:"put"`
	Delete bool `json:"delete"`
}

// AccessPolicy is what a key is allowed to do. Full overrides the
// per-resource grants.
type AccessPolicy struct {
	Full      bool                    `json:"full"`
	Resources map[string]MethodAccess `json:"resources,omitempty"`
}

// User is one API-key holder.
type User struct {
	APIKey string       `json:"api_key"`
	App    string       `json:"app"`
	Access AccessPolicy `json:"endpoint_access"`
}

// LoadKeys parses the key file. An absent file is not an error; the
// caller falls back to the bootstrap admin key.
func LoadKeys(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read keys: %w", err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("auth: parse keys: %w", err)
	}
	return users, nil
}

// AdminUser builds the full-access bootstrap caller for the given key.
func AdminUser(key string) User {
	return User{
		APIKey: key,
		App:    "CargoHUB Dashboard",
		Access: AccessPolicy{Full: true},
	}
}

// Provider answers who a key belongs to and what it may do.
type Provider struct {
	users  map[string]User
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProvider indexes the users by key. cache may be nil, in which case
// every lookup hits the in-memory index directly.
func NewProvider(users []User, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Provider {
	byKey := make(map[string]User, len(users))
	for _, u := range users {
		byKey[u.APIKey] = u
	}
	return &Provider{users: byKey, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(key string) string { return "cargohub:apikey:" + key }

// Resolve looks a key up, trying the cache first. Unknown keys are not
// cached so a key added to the file takes effect immediately.
func (p *Provider) Resolve(ctx context.Context, key string) (User, bool) {
	if key == "" {
		return User{}, false
	}
	if p.cache != nil {
		if data, err := p.cache.Get(ctx, cacheKey(key)).Bytes(); err == nil {
			var u User
			if err := json.Unmarshal(data, &u); err == nil {
				return u, true
			}
		}
	}
	u, ok := p.users[key]
	if !ok {
		return User{}, false
	}
	if p.cache != nil {
		if data, err := json.Marshal(u); err == nil {
			if err := p.cache.Set(ctx, cacheKey(key), data, p.ttl).Err(); err != nil {
				p.logger.Debug("api key cache write failed", "error", err)
			}
		}
	}
	return u, true
}

// HasAccess reports whether the caller may use the method on the
// resource. method is the lower-case HTTP verb.
func (p *Provider) HasAccess(u User, resource, method string) bool {
	if u.Access.Full {
		return true
	}
	grant, ok := u.Access.Resources[resource]
	if !ok {
		return false
	}
	switch method {
	case "get":
		return grant.Get
	case "post":
		return grant.Post
	case "put":
		return grant.Put
	case "delete":
		return grant.Delete
	default:
		return false
	}
}
