package mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// MockDocumentStore implements store.DocumentStore[T] in memory.
type MockDocumentStore[T any] struct {
	mu    sync.Mutex
	ids   []uuid.UUID
	docs  map[uuid.UUID]*T
	// UniqueFields lists JSON fields whose values must be unique across
	// documents; a violating Insert fails with store.ErrDuplicate.
	UniqueFields []string

	// InsertErr, when set, fails every Insert.
	InsertErr error

	InsertCount int
	DeleteCount int
	PatchCount  int
}

var _ store.DocumentStore[struct{}] = (*MockDocumentStore[struct{}])(nil)

// NewMockDocumentStore creates an empty MockDocumentStore.
func NewMockDocumentStore[T any](uniqueFields ...string) *MockDocumentStore[T] {
	return &MockDocumentStore[T]{
		docs:         make(map[uuid.UUID]*T),
		UniqueFields: uniqueFields,
	}
}

// Seed inserts a document without any checks.
func (m *MockDocumentStore[T]) Seed(id uuid.UUID, doc *T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.docs[id] = doc
}

// Len returns the number of stored documents.
func (m *MockDocumentStore[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}

// Insert implements store.DocumentStore.
func (m *MockDocumentStore[T]) Insert(ctx context.Context, id uuid.UUID, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCount++

	if m.InsertErr != nil {
		return m.InsertErr
	}
	if _, exists := m.docs[id]; exists {
		return store.ErrDuplicate
	}
	for _, field := range m.UniqueFields {
		want := jsonField(doc, field)
		if want == "" {
			continue
		}
		for _, existing := range m.docs {
			if jsonField(existing, field) == want {
				return store.ErrDuplicate
			}
		}
	}

	m.ids = append(m.ids, id)
	m.docs[id] = clone(doc)
	return nil
}

// FindByID implements store.DocumentStore.
func (m *MockDocumentStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(doc), nil
}

// FindOne implements store.DocumentStore.
func (m *MockDocumentStore[T]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := fmt.Sprint(value)
	for _, id := range m.ids {
		if jsonField(m.docs[id], field) == want {
			return clone(m.docs[id]), nil
		}
	}
	return nil, store.ErrNotFound
}

// Find implements store.DocumentStore. Equality filters are honored;
// keyword and sort are ignored, documents come back in insertion order.
func (m *MockDocumentStore[T]) Find(ctx context.Context, plan *query.Plan) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := m.matching(plan)
	start := plan.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if plan.Limit > 0 && start+plan.Limit < end {
		end = start + plan.Limit
	}

	out := make([]T, 0, end-start)
	for _, id := range matched[start:end] {
		out = append(out, *clone(m.docs[id]))
	}
	return out, nil
}

// Count implements store.DocumentStore.
func (m *MockDocumentStore[T]) Count(ctx context.Context, plan *query.Plan) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(plan))), nil
}

// Replace implements store.DocumentStore.
func (m *MockDocumentStore[T]) Replace(ctx context.Context, id uuid.UUID, doc *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return nil, store.ErrNotFound
	}
	m.docs[id] = clone(doc)
	return clone(doc), nil
}

// Patch implements store.DocumentStore via a JSON-level merge, mirroring the
// real store's document merge semantics.
func (m *MockDocumentStore[T]) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PatchCount++

	doc, ok := m.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, err
	}
	for k, v := range fields {
		full[k] = v
	}
	merged, err := json.Marshal(full)
	if err != nil {
		return nil, err
	}
	updated := new(T)
	if err := json.Unmarshal(merged, updated); err != nil {
		return nil, err
	}

	m.docs[id] = updated
	return clone(updated), nil
}

// Delete implements store.DocumentStore.
func (m *MockDocumentStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCount++

	if _, ok := m.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.docs, id)
	for i, existing := range m.ids {
		if existing == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	return nil
}

// WithTx implements store.DocumentStore; the mock has no transactions.
func (m *MockDocumentStore[T]) WithTx(tx *sql.Tx) store.DocumentStore[T] {
	return m
}

func (m *MockDocumentStore[T]) matching(plan *query.Plan) []uuid.UUID {
	matched := make([]uuid.UUID, 0, len(m.ids))
	for _, id := range m.ids {
		if m.matches(m.docs[id], plan) {
			matched = append(matched, id)
		}
	}
	return matched
}

func (m *MockDocumentStore[T]) matches(doc *T, plan *query.Plan) bool {
	if plan == nil {
		return true
	}
	for _, f := range plan.Filters {
		if f.Op != query.OpEq {
			continue
		}
		if jsonField(doc, f.Field) != f.Value {
			return false
		}
	}
	return true
}

// jsonField returns the document field's JSON value as a plain string.
func jsonField(doc any, field string) string {
	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return ""
	}
	v, ok := full[field]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

func clone[T any](doc *T) *T {
	raw, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return doc
	}
	return out
}
