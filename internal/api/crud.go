package api

import (
	"context"
	"io"

	"github.com/cargohub/cargohub/internal/platform/httpx"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
	"github.com/cargohub/cargohub/internal/validate"
)

// RelationFunc lists the records related to one parent id. The function
// locks whatever stores it reads on its own.
type RelationFunc func(ctx context.Context, id int64) (any, error)

// CRUDConfig assembles a CRUD resource. Build maps a validated create
// payload onto a fresh record, Apply folds a patch into an existing one.
// Normalize, AfterCreate and Relations are optional.
type CRUDConfig[T any, PT interface {
	store.Record
	*T
}, C any, P any] struct {
	Store     *store.Store[T, PT]
	Validator *refint.Validator
	Build     func(ctx context.Context, req C) (T, error)
	Apply     func(patch P, rec PT)
	// Normalize runs after Build and after Apply, before the record is
	// stored. Derived counters are recomputed here.
	Normalize func(rec PT)
	// AfterCreate runs once the record is persisted, outside the lock.
	AfterCreate func(ctx context.Context, rec T)
	Relations   map[string]RelationFunc
}

// CRUD implements Resource for one typed store.
type CRUD[T any, PT interface {
	store.Record
	*T
}, C any, P any] struct {
	cfg CRUDConfig[T, PT, C, P]
}

// NewCRUD builds the resource from its configuration.
func NewCRUD[T any, PT interface {
	store.Record
	*T
}, C any, P any](cfg CRUDConfig[T, PT, C, P]) *CRUD[T, PT, C, P] {
	return &CRUD[T, PT, C, P]{cfg: cfg}
}

func (c *CRUD[T, PT, C, P]) Name() string {
	return string(c.cfg.Store.Kind())
}

func (c *CRUD[T, PT, C, P]) List(ctx context.Context) (any, error) {
	return c.cfg.Store.List(), nil
}

func (c *CRUD[T, PT, C, P]) Get(ctx context.Context, id int64) (any, error) {
	rec, err := c.cfg.Store.Get(id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *CRUD[T, PT, C, P]) Create(ctx context.Context, body io.Reader) (any, error) {
	var req C
	if err := httpx.DecodeJSON(body, &req); err != nil {
		return nil, shared.NewValidationError(map[string]string{"body": "malformed payload: " + err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	rec, err := c.cfg.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	if c.cfg.Normalize != nil {
		c.cfg.Normalize(PT(&rec))
	}

	st := c.cfg.Store
	st.Lock()
	created := st.CreateLocked(rec)
	err = st.SaveLocked()
	st.Unlock()
	if err != nil {
		return nil, err
	}
	if c.cfg.AfterCreate != nil {
		c.cfg.AfterCreate(ctx, created)
	}
	return created, nil
}

func (c *CRUD[T, PT, C, P]) Update(ctx context.Context, id int64, body io.Reader) (any, error) {
	var patch P
	if err := httpx.DecodeJSON(body, &patch); err != nil {
		return nil, shared.NewValidationError(map[string]string{"body": "malformed payload: " + err.Error()})
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	st := c.cfg.Store
	st.Lock()
	defer st.Unlock()
	updated, err := st.UpdateLocked(id, func(rec PT) {
		c.cfg.Apply(patch, rec)
		if c.cfg.Normalize != nil {
			c.cfg.Normalize(rec)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := st.SaveLocked(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *CRUD[T, PT, C, P]) Delete(ctx context.Context, id int64, dryRun bool) (any, error) {
	report, deleted, err := c.cfg.Validator.Delete(c.cfg.Store.Kind(), id, dryRun)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return report, nil
	}
	return deleted, nil
}

// Relation resolves a nested listing. The parent must exist.
func (c *CRUD[T, PT, C, P]) Relation(ctx context.Context, id int64, name string) (any, error) {
	fn, ok := c.cfg.Relations[name]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if _, err := c.cfg.Store.Get(id); err != nil {
		return nil, err
	}
	return fn(ctx, id)
}
