package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no parameter exists at the path
var ErrNotFound = errors.New("secretsync: parameter not found")

// Parameter is the store's representation of one entry. Value is always a
// string even when the logical value is structured; structured values are
// serialized to text before storage and decoded back on read.
type Parameter struct {
	Path   string
	Value  string
	Secure bool
}

// ParameterStore is the consumed capability set of the remote key-value
// secret store
type ParameterStore interface {
	// Get fetches the parameter at path, decrypting it when requested.
	Get(ctx context.Context, path string, decrypt bool) (Parameter, error)

	// Put writes an encrypted parameter, overwriting any existing value.
	Put(ctx context.Context, path, value string) error

	// Delete removes all the given parameters in batch.
	Delete(ctx context.Context, paths []string) error

	// ListByPath returns every parameter under the prefix, recursively.
	ListByPath(ctx context.Context, prefix string, decrypt bool) ([]Parameter, error)
}
