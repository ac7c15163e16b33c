package syncer

import (
	"context"
	"errors"

	"github.com/stackmill/secretsync/internal/secretsfile"
	"github.com/stackmill/secretsync/internal/store"
)

// Status classifies one entry's diff against the remote store
type Status string

const (
	// StatusUnchanged means the decoded remote value deep-equals the local one
	StatusUnchanged Status = "unchanged"
	// StatusChanged means the remote value differs or could not be read
	StatusChanged Status = "changed"
	// StatusNew means no remote parameter exists at the path
	StatusNew Status = "new"
)

// HasChanged reports whether the local value differs from the remote
// parameter at path. Any failure on the remote side -- not found, access
// error, transient fault, undecodable value -- counts as changed: ambiguity
// about remote state must never block a deploy, at the cost of a redundant
// write rather than a silently skipped one.
func HasChanged(ctx context.Context, st store.ParameterStore, path string, localValue interface{}) bool {
	param, err := st.Get(ctx, path, true)
	if err != nil {
		return true
	}

	remoteValue, err := secretsfile.DecodeValue(param.Value)
	if err != nil {
		return true
	}

	return !secretsfile.Equal(localValue, remoteValue)
}

// Classify performs the same check as HasChanged but distinguishes a missing
// remote parameter from a drifted one, for plan output.
func Classify(ctx context.Context, st store.ParameterStore, path string, localValue interface{}) Status {
	param, err := st.Get(ctx, path, true)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusNew
		}
		return StatusChanged
	}

	remoteValue, err := secretsfile.DecodeValue(param.Value)
	if err != nil {
		return StatusChanged
	}

	if secretsfile.Equal(localValue, remoteValue) {
		return StatusUnchanged
	}
	return StatusChanged
}
