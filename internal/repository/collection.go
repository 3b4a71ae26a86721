package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SchemaVersion is the version written in every persisted collection envelope.
const SchemaVersion = 1

var tracer = otel.Tracer("gitlab.com/yelinaung/freelance-ledger/internal/repository")

// Entity is an element of a persisted collection.
type Entity interface {
	EntityID() string
}

type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// Collection is an ordered sequence of entities stored as a single value.
// Every mutation reads the whole collection, applies one change and writes
// the whole collection back. It does no locking; callers that mutate from
// several goroutines must serialize.
type Collection[T Entity] struct {
	kv   KV
	key  string
	seed func() []T
}

// NewCollection creates a collection stored under key. seed produces the
// data written on the first load when nothing is stored yet; nil seeds an
// empty collection.
func NewCollection[T Entity](kv KV, key string, seed func() []T) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, seed: seed}
}

// Load returns the stored collection. On the first call, when nothing is
// stored under the key, the seed data is written and returned.
// Undecodable bytes yield ErrCorruptData; backend failures yield
// ErrStorageRead or ErrStorageWrite.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	ctx, span := c.start(ctx, "collection.Load")
	defer span.End()

	items, err := c.load(ctx)
	return items, observe(span, err)
}

// Append adds entity at the end of the collection. An entity whose ID is
// already stored yields ErrDuplicateID without writing.
func (c *Collection[T]) Append(ctx context.Context, entity T) error {
	ctx, span := c.start(ctx, "collection.Append")
	defer span.End()

	items, err := c.current(ctx)
	if err != nil {
		return observe(span, err)
	}
	if indexOf(items, entity.EntityID()) >= 0 {
		return observe(span, fmt.Errorf("%s %q: %w", c.key, entity.EntityID(), ErrDuplicateID))
	}
	return observe(span, c.write(ctx, append(items, entity)))
}

// Replace swaps the element with the same ID as entity, keeping its position.
func (c *Collection[T]) Replace(ctx context.Context, entity T) error {
	ctx, span := c.start(ctx, "collection.Replace")
	defer span.End()

	items, err := c.current(ctx)
	if err != nil {
		return observe(span, err)
	}

	i := indexOf(items, entity.EntityID())
	if i < 0 {
		return observe(span, fmt.Errorf("%s %q: %w", c.key, entity.EntityID(), ErrNotFound))
	}
	items[i] = entity

	return observe(span, c.write(ctx, items))
}

// Remove deletes the element with the given ID.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	ctx, span := c.start(ctx, "collection.Remove")
	defer span.End()

	items, err := c.current(ctx)
	if err != nil {
		return observe(span, err)
	}

	i := indexOf(items, id)
	if i < 0 {
		return observe(span, fmt.Errorf("%s %q: %w", c.key, id, ErrNotFound))
	}
	items = append(items[:i], items[i+1:]...)

	return observe(span, c.write(ctx, items))
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStorageRead, c.key, err)
	}

	if !ok {
		var items []T
		if c.seed != nil {
			items = c.seed()
		}
		if items == nil {
			items = []T{}
		}
		if err := c.write(ctx, items); err != nil {
			return nil, err
		}
		logger.Log.Info().
			Str("collection", c.key).
			Int("count", len(items)).
			Msg("Seeded empty collection")
		return items, nil
	}

	return decode[T](c.key, data)
}

// current is the read half of a mutation. Corrupt data is replaced by an
// empty collection so the user can keep working; unreadable storage aborts
// the mutation.
func (c *Collection[T]) current(ctx context.Context) ([]T, error) {
	items, err := c.load(ctx)
	if errors.Is(err, ErrCorruptData) {
		logger.Log.Warn().
			Err(err).
			Str("collection", c.key).
			Msg("Overwriting corrupt collection")
		return []T{}, nil
	}
	return items, err
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	data, err := json.Marshal(envelope[T]{Version: SchemaVersion, Items: items})
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrStorageWrite, c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, c.key, err)
	}
	return nil
}

func (c *Collection[T]) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("collection", c.key)))
}

// decode accepts the versioned envelope and the bare JSON array written
// before versioning existed.
func decode[T any](key string, data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)

	var items []T
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, key, err)
		}
	} else {
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, key, err)
		}
		if env.Version < 1 || env.Version > SchemaVersion {
			return nil, fmt.Errorf("%w: %s: unsupported schema version %d", ErrCorruptData, key, env.Version)
		}
		items = env.Items
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

func indexOf[T Entity](items []T, id string) int {
	for i := range items {
		if items[i].EntityID() == id {
			return i
		}
	}
	return -1
}

func observe(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
