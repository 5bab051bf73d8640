package storage

import (
	"context"
	"encoding/json"
	"sync"

	"hotzaot/internal/log"
)

// Binding links an in-memory value of type T to one named slot, read once
// at construction and written through on every change.
//
// Failure policy is deliberately fail-open: a slot that is absent or does
// not decode yields the caller-supplied default (logged, never surfaced),
// and a failed persist keeps the in-memory update anyway. The in-memory
// and durable views may therefore diverge until the next successful write;
// callers must not treat Set as a durability guarantee.
type Binding[T any] struct {
	mu     sync.Mutex
	store  *SlotStore
	key    string
	value  T
	logger *log.Logger
}

// NewBinding reads the slot and returns a bound value: the decoded content
// when present and well-formed, the default otherwise. A decode failure
// does not overwrite the stored document.
func NewBinding[T any](ctx context.Context, store *SlotStore, key string, defaultValue T, logger *log.Logger) *Binding[T] {
	b := &Binding[T]{
		store:  store,
		key:    key,
		value:  defaultValue,
		logger: logger.WithComponent(log.ComponentState).With(log.FieldSlot, key),
	}

	raw, ok, err := store.Read(ctx, key)
	if err != nil {
		b.logger.Error("Slot read failed, using default", log.FieldError, err)
		return b
	}
	if !ok {
		return b
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		b.logger.Error("Slot decode failed, using default",
			log.FieldOperation, log.OpDecode, log.FieldError, err)
		return b
	}
	b.value = decoded
	return b
}

// Get returns the bound in-memory value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set replaces the bound value and writes it through to the slot. The
// in-memory value is updated first and kept even when persistence fails.
func (b *Binding[T]) Set(ctx context.Context, value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = value
	b.persistLocked(ctx)
}

// Update applies fn to a snapshot of the current value, stores the result
// and writes it through. fn receives its own copy and may mutate it in
// place; readers holding an earlier Get result keep an untouched value.
// The updated value is returned for convenience.
func (b *Binding[T]) Update(ctx context.Context, fn func(T) T) T {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = fn(b.snapshotLocked())
	b.persistLocked(ctx)
	return b.value
}

// snapshotLocked deep-copies the bound value through its JSON form, the
// same codec the slot uses. A value that cannot round-trip would never
// have persisted either, so a failure here falls back to the live value.
func (b *Binding[T]) snapshotLocked() T {
	encoded, err := json.Marshal(b.value)
	if err != nil {
		b.logger.Error("Slot snapshot encode failed, sharing live value",
			log.FieldOperation, log.OpEncode, log.FieldError, err)
		return b.value
	}
	var out T
	if err := json.Unmarshal(encoded, &out); err != nil {
		b.logger.Error("Slot snapshot decode failed, sharing live value",
			log.FieldOperation, log.OpDecode, log.FieldError, err)
		return b.value
	}
	return out
}

func (b *Binding[T]) persistLocked(ctx context.Context) {
	encoded, err := json.Marshal(b.value)
	if err != nil {
		b.logger.Error("Slot encode failed, in-memory value kept",
			log.FieldOperation, log.OpEncode, log.FieldError, err)
		return
	}
	if err := b.store.Write(ctx, b.key, string(encoded)); err != nil {
		b.logger.Error("Slot write failed, in-memory value kept",
			log.FieldOperation, log.OpWrite, log.FieldError, err)
	}
}

// Key returns the slot name the binding is fixed to.
func (b *Binding[T]) Key() string {
	return b.key
}
