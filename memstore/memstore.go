// Package memstore holds map-backed implementations of the service store interfaces.
// They follow the same not-found and duplicate-key contract as the MongoDB repositories
// and are used by tests and local tooling.
package memstore

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
)

func notFound(op string) error {
	return errors.Wrap(errs.ErrRecordNotFound, op)
}

// table is a goroutine-safe id-keyed collection that hands out copies.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]T
	// order keeps insertion order so listings are stable.
	order []primitive.ObjectID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T)}
}

func (t *table[T]) get(id primitive.ObjectID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id primitive.ObjectID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id primitive.ObjectID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, id := range t.order {
		if v := t.rows[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortNewestFirst[T any](rows []T, at func(T) int64) {
	sort.SliceStable(rows, func(i, j int) bool { return at(rows[i]) > at(rows[j]) })
}
