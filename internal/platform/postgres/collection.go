package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/platform/logger"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// Collection is the generic PostgreSQL implementation of
// store.DocumentStore. Each entity type lives in its own table of shape
// (id uuid primary key, doc jsonb, created_at, updated_at); uniqueness and
// referential invariants are enforced by expression indexes declared in the
// migrations.
type Collection[T any] struct {
	db     store.DBTX
	spec   store.CollectionSpec
	logger *slog.Logger
}

var _ store.DocumentStore[struct{}] = (*Collection[struct{}])(nil)

// NewCollection creates a collection bound to the given table spec.
func NewCollection[T any](db store.DBTX, spec store.CollectionSpec, log *slog.Logger) *Collection[T] {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Collection[T]{
		db:     db,
		spec:   spec,
		logger: log.With(slog.String("component", spec.Table+"_store")),
	}
}

// WithTx returns a collection bound to the transaction.
func (c *Collection[T]) WithTx(tx *sql.Tx) store.DocumentStore[T] {
	return &Collection[T]{db: tx, spec: c.spec, logger: c.logger}
}

// Insert implements store.DocumentStore.Insert.
func (c *Collection[T]) Insert(ctx context.Context, id uuid.UUID, doc *T) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.spec.Entity, err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, now(), now())`,
		c.spec.Table,
	)
	if _, err := c.db.ExecContext(ctx, insert, id, raw); err != nil {
		mapped := MapError(err, c.spec.Entity)
		log.Warn("insert failed",
			slog.String("entity", c.spec.Entity),
			slog.String("id", id.String()),
			slog.String("error", mapped.Error()))
		return mapped
	}

	log.Debug("document inserted",
		slog.String("entity", c.spec.Entity),
		slog.String("id", id.String()))
	return nil
}

// FindByID implements store.DocumentStore.FindByID.
func (c *Collection[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	sel := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.spec.Table)
	return c.scanOne(ctx, sel, id)
}

// FindOne implements store.DocumentStore.FindOne.
func (c *Collection[T]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	sel := fmt.Sprintf(
		`SELECT doc FROM %s WHERE doc->>%s = $1 ORDER BY id ASC LIMIT 1`,
		c.spec.Table, quoteLiteral(field),
	)
	return c.scanOne(ctx, sel, fmt.Sprint(value))
}

func (c *Collection[T]) scanOne(ctx context.Context, sel string, arg any) (*T, error) {
	var raw []byte
	if err := c.db.QueryRowContext(ctx, sel, arg).Scan(&raw); err != nil {
		return nil, MapError(err, c.spec.Entity)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.spec.Entity, err)
	}
	return &doc, nil
}

// Find implements store.DocumentStore.Find.
func (c *Collection[T]) Find(ctx context.Context, plan *query.Plan) ([]T, error) {
	compiler := newPlanCompiler(c.spec)
	sel := fmt.Sprintf(`SELECT doc FROM %s`, c.spec.Table) +
		compiler.where(plan) +
		compiler.orderBy(plan) +
		compiler.limitOffset(plan)

	rows, err := c.db.QueryContext(ctx, sel, compiler.args...)
	if err != nil {
		return nil, MapError(err, c.spec.Entity)
	}
	defer func() { _ = rows.Close() }()

	docs := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", c.spec.Entity, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count implements store.DocumentStore.Count.
func (c *Collection[T]) Count(ctx context.Context, plan *query.Plan) (int64, error) {
	compiler := newPlanCompiler(c.spec)
	sel := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.spec.Table) + compiler.where(plan)

	var total int64
	if err := c.db.QueryRowContext(ctx, sel, compiler.args...).Scan(&total); err != nil {
		return 0, MapError(err, c.spec.Entity)
	}
	return total, nil
}

// Replace implements store.DocumentStore.Replace.
func (c *Collection[T]) Replace(ctx context.Context, id uuid.UUID, doc *T) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", c.spec.Entity, err)
	}

	update := fmt.Sprintf(
		`UPDATE %s SET doc = $2, updated_at = now() WHERE id = $1 RETURNING doc`,
		c.spec.Table,
	)
	return c.scanOneUpdate(ctx, update, id, raw)
}

// Patch implements store.DocumentStore.Patch. The merge happens in a single
// statement so concurrent patches of different fields do not lose writes.
func (c *Collection[T]) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	raw, err := patchPayload(fields, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch for %s: %w", c.spec.Entity, err)
	}

	update := fmt.Sprintf(
		`UPDATE %s SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1 RETURNING doc`,
		c.spec.Table,
	)
	return c.scanOneUpdate(ctx, update, id, raw)
}

// patchPayload serializes the patch with the updatedAt stamp added. The
// caller's map is copied, never written to.
func patchPayload(fields map[string]any, now time.Time) ([]byte, error) {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = now
	return json.Marshal(merged)
}

func (c *Collection[T]) scanOneUpdate(ctx context.Context, update string, id uuid.UUID, raw []byte) (*T, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var out []byte
	if err := c.db.QueryRowContext(ctx, update, id, raw).Scan(&out); err != nil {
		mapped := MapError(err, c.spec.Entity)
		if !store.IsNotFoundError(mapped) {
			log.Warn("update failed",
				slog.String("entity", c.spec.Entity),
				slog.String("id", id.String()),
				slog.String("error", mapped.Error()))
		}
		return nil, mapped
	}

	var doc T
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.spec.Entity, err)
	}
	return &doc, nil
}

// Delete implements store.DocumentStore.Delete.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.spec.Table)
	result, err := c.db.ExecContext(ctx, del, id)
	if err != nil {
		return MapError(err, c.spec.Entity)
	}
	return CheckRowsAffected(result, c.spec.Entity)
}
