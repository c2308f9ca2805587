package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadValue reads and decodes the value stored under key. Absent keys return
// ErrNotFound untouched; an undecodable value is reported as ErrCorrupt.
func LoadValue[T any](ctx context.Context, kv KV, key string) (T, error) {
	var value T

	raw, err := kv.Get(ctx, key)
	if err != nil {
		return value, err
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("decode %q: %w: %v", key, ErrCorrupt, err)
	}
	return value, nil
}

// SaveValue encodes value and writes it under key.
func SaveValue[T any](ctx context.Context, kv KV, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}

// LoadCollection reads the named collection. An absent key and a key holding
// JSON null both decode to an empty sequence.
func LoadCollection[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	records, err := LoadValue[[]T](ctx, kv, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveCollection writes the named collection, preserving insertion order. A
// nil slice is stored as an empty sequence rather than JSON null.
func SaveCollection[T any](ctx context.Context, kv KV, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	return SaveValue(ctx, kv, key, records)
}

// EnsureDefault writes the default value only when the key is absent. Existing
// values, including corrupted ones, are left untouched.
func EnsureDefault[T any](ctx context.Context, kv KV, key string, defaultValue T) error {
	_, err := kv.Get(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return SaveValue(ctx, kv, key, defaultValue)
}
