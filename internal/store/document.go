package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/query"
)

// CollectionSpec describes how a collection of one entity type is stored
// and searched. It is the per-entity configuration that lets a single
// generic store implementation serve every entity type.
type CollectionSpec struct {
	// Table is the backing table name.
	Table string

	// Entity is the display name used in error messages ("coupon", "product").
	Entity string

	// Searchable lists the document fields the keyword parameter matches
	// against (products: title+description; everything else: name).
	Searchable []string

	// Numeric lists document fields that must be compared and sorted as
	// numbers rather than text (price, quantity, ratings).
	Numeric []string
}

// IsNumeric reports whether the field needs numeric comparison semantics.
func (s CollectionSpec) IsNumeric(field string) bool {
	for _, f := range s.Numeric {
		if f == field {
			return true
		}
	}
	return false
}

// DocumentStore is the generic persistence contract for one entity type.
// T is the domain type; documents are stored whole and queried through the
// shaped plan, so no per-entity store implementation is needed.
type DocumentStore[T any] interface {
	// Insert persists a new document under the given ID.
	// Returns ErrDuplicate when a uniqueness constraint is violated and
	// ErrInvalidEntity when a referential constraint fails.
	Insert(ctx context.Context, id uuid.UUID, doc *T) error

	// FindByID retrieves a document. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// FindOne retrieves the first document whose field equals value.
	// Returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, field string, value any) (*T, error)

	// Find executes the shaped plan (filters, keyword, sort, pagination)
	// and returns the matching page. An unmatchable filter yields an empty
	// slice, never an error.
	Find(ctx context.Context, plan *query.Plan) ([]T, error)

	// Count returns the number of documents matching the plan's filters and
	// keyword, ignoring pagination. Used for the count-then-query contract.
	Count(ctx context.Context, plan *query.Plan) (int64, error)

	// Replace overwrites the whole document. Returns ErrNotFound if absent.
	Replace(ctx context.Context, id uuid.UUID, doc *T) (*T, error)

	// Patch merges the given fields into the document and returns the
	// post-update document. Returns ErrNotFound if absent.
	Patch(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)

	// Delete removes the document. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) DocumentStore[T]
}
