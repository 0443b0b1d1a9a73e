package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/platform/logger"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// CreateHook runs before a document is written; returning an error aborts
// the create before any write occurs. Used for referential checks like
// "the subcategory's category must exist".
type CreateHook[T any] func(ctx context.Context, doc *T) error

// LoadHook transforms a document after it is loaded from (or written to)
// storage, e.g. rewriting stored image filenames into absolute URLs. Hooks
// are invoked explicitly by the resource, never attached to the data model.
type LoadHook[T any] func(doc *T)

// Resource supplies the five standard operations for one entity type. All
// per-entity behavior is carried by configuration (store spec, hooks,
// shaper defaults); there is no per-entity control flow.
type Resource[T any] struct {
	name         string
	store        store.DocumentStore[T]
	shaper       query.Shaper
	beforeCreate []CreateHook[T]
	afterLoad    []LoadHook[T]
	logger       *slog.Logger
}

// ResourceOption configures a Resource.
type ResourceOption[T any] func(*Resource[T])

// WithBeforeCreate registers a before-create hook.
func WithBeforeCreate[T any](hook CreateHook[T]) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.beforeCreate = append(r.beforeCreate, hook)
	}
}

// WithAfterLoad registers an after-load hook.
func WithAfterLoad[T any](hook LoadHook[T]) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.afterLoad = append(r.afterLoad, hook)
	}
}

// NewResource creates a Resource for one entity type.
func NewResource[T any](
	name string,
	st store.DocumentStore[T],
	shaper query.Shaper,
	log *slog.Logger,
	opts ...ResourceOption[T],
) *Resource[T] {
	if st == nil {
		panic("store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	r := &Resource[T]{
		name:   name,
		store:  st,
		shaper: shaper,
		logger: log.With(slog.String("component", name+"_resource")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates referential hooks and persists the document. Uniqueness
// violations surface as store.ErrDuplicate from the storage layer.
func (r *Resource[T]) Create(ctx context.Context, id uuid.UUID, doc *T) (*T, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	for _, hook := range r.beforeCreate {
		if err := hook(ctx, doc); err != nil {
			log.Warn("create rejected by hook",
				slog.String("entity", r.name),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := r.store.Insert(ctx, id, doc); err != nil {
		return nil, err
	}

	r.applyLoadHooks(doc)
	log.Info("entity created",
		slog.String("entity", r.name),
		slog.String("id", id.String()))
	return doc, nil
}

// List shapes the query parameters, merges them with the scope filters,
// counts the matching documents and returns the requested page together
// with its pagination descriptor and the executed plan.
func (r *Resource[T]) List(
	ctx context.Context,
	scope []query.Filter,
	values url.Values,
) ([]T, query.Pagination, *query.Plan, error) {
	plan := r.shaper.Shape(values)
	if len(scope) > 0 {
		plan.Filters = append(scope, plan.Filters...)
	}

	total, err := r.store.Count(ctx, plan)
	if err != nil {
		return nil, query.Pagination{}, nil, fmt.Errorf("failed to count %s: %w", r.name, err)
	}

	docs, err := r.store.Find(ctx, plan)
	if err != nil {
		return nil, query.Pagination{}, nil, fmt.Errorf("failed to list %s: %w", r.name, err)
	}

	for i := range docs {
		r.applyLoadHooks(&docs[i])
	}

	return docs, query.Paginate(total, plan.Page, plan.Limit), plan, nil
}

// Get retrieves one document. Returns store.ErrNotFound if the id does not
// resolve; identifier well-formedness is the router's concern.
func (r *Resource[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	doc, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.applyLoadHooks(doc)
	return doc, nil
}

// Update merges the patch into the document and returns the post-update
// entity. The merged document must still satisfy the entity's invariants;
// a patch that would break them is rejected before any write. Returns
// store.ErrNotFound if the id does not resolve.
func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*T, error) {
	if err := r.previewMerge(ctx, id, patch); err != nil {
		return nil, err
	}

	doc, err := r.store.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.applyLoadHooks(doc)
	return doc, nil
}

// previewMerge applies the patch to the current document in memory and
// re-runs entity validation on the result. Storage still performs the
// authoritative merge.
func (r *Resource[T]) previewMerge(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	current, err := r.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.name, err)
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", r.name, err)
	}
	for k, v := range patch {
		full[k] = v
	}
	mergedRaw, err := json.Marshal(full)
	if err != nil {
		return fmt.Errorf("failed to marshal merged %s: %w", r.name, err)
	}

	merged := new(T)
	if err := json.Unmarshal(mergedRaw, merged); err != nil {
		// A type mismatch in the patch (e.g. a string where a number
		// belongs) is a client error, not a storage failure.
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if v, ok := any(merged).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// Delete hard-deletes the document. Returns store.ErrNotFound if the id
// does not resolve; a successful delete has no body to return.
func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, r.logger)
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("entity deleted",
		slog.String("entity", r.name),
		slog.String("id", id.String()))
	return nil
}

func (r *Resource[T]) applyLoadHooks(doc *T) {
	for _, hook := range r.afterLoad {
		hook(doc)
	}
}
