// Package api mounts the versioned REST surface. Each entity collection
// is exposed through a Resource; the generic CRUD type implements the
// contract once for all of them on top of a typed store.
package api

import (
	"context"
	"io"
)

// Resource is the per-collection contract the handler mounts. Create and
// Update receive the raw body so each resource decodes into its own
// typed payload.
type Resource interface {
	Name() string
	List(ctx context.Context) (any, error)
	Get(ctx context.Context, id int64) (any, error)
	Create(ctx context.Context, body io.Reader) (any, error)
	Update(ctx context.Context, id int64, body io.Reader) (any, error)
	Delete(ctx context.Context, id int64, dryRun bool) (any, error)
}

// RelationResolver serves the nested read-only listings such as the
// locations of a warehouse. Unknown relation names answer ErrNotFound.
type RelationResolver interface {
	Relation(ctx context.Context, id int64, name string) (any, error)
}

// Committer runs the one-way commit workflow of a resource.
type Committer interface {
	Commit(ctx context.Context, id int64) (any, error)
}

// ItemsReplacer swaps the full line-item list of a record.
type ItemsReplacer interface {
	ReplaceItems(ctx context.Context, id int64, body io.Reader) (any, error)
}
