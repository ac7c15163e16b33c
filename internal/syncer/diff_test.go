package syncer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackmill/secretsync/internal/logging"
	"github.com/stackmill/secretsync/internal/store"
	"github.com/stackmill/secretsync/internal/syncer"
	"github.com/stackmill/secretsync/tests/fakes"
)

func newDiffStore(t *testing.T, client *fakes.FakeSSMClient) *store.SSMStore {
	t.Helper()
	s, err := store.NewSSMStore(store.SSMConfig{}, logging.New(false, true), store.WithClient(client))
	require.NoError(t, err)
	return s
}

func TestHasChangedTrueWhenRemoteMissing(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	s := newDiffStore(t, client)

	assert.True(t, syncer.HasChanged(context.Background(), s, "/p/secrets/db", "pw1"))
}

// Any fetch failure counts as changed, even when the local value would have
// matched what the store holds.
func TestHasChangedTrueOnFetchError(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	client.AddSecureStringParameter("/p/secrets/db", "pw1")
	client.AddError("/p/secrets/db", errors.New("AccessDeniedException"))
	s := newDiffStore(t, client)

	assert.True(t, syncer.HasChanged(context.Background(), s, "/p/secrets/db", "pw1"))
}

func TestHasChangedTrueOnUndecodableRemote(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	client.AddSecureStringParameter("/p/secrets/db", "{")
	s := newDiffStore(t, client)

	assert.True(t, syncer.HasChanged(context.Background(), s, "/p/secrets/db", "pw1"))
}

func TestHasChangedFalseOnDeepEqual(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	client.AddSecureStringParameter("/p/secrets/db", "pw1")
	// Key order in the stored encoding differs from the local mapping
	client.AddSecureStringParameter("/p/secrets/api", `{"ttl":30,"key":"abc"}`)
	s := newDiffStore(t, client)

	assert.False(t, syncer.HasChanged(context.Background(), s, "/p/secrets/db", "pw1"))
	assert.False(t, syncer.HasChanged(context.Background(), s, "/p/secrets/api",
		map[string]interface{}{"key": "abc", "ttl": 30}))
}

func TestHasChangedScalarTypeSensitive(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	// Decodes to numeric 1, which must not equal the local string "1"
	client.AddSecureStringParameter("/p/secrets/count", "1")
	s := newDiffStore(t, client)

	assert.True(t, syncer.HasChanged(context.Background(), s, "/p/secrets/count", "1"))
	assert.False(t, syncer.HasChanged(context.Background(), s, "/p/secrets/count", 1))
}

func TestHasChangedOnValueDrift(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	client.AddSecureStringParameter("/p/secrets/api", `{"key":"abc","ttl":60}`)
	s := newDiffStore(t, client)

	assert.True(t, syncer.HasChanged(context.Background(), s, "/p/secrets/api",
		map[string]interface{}{"key": "abc", "ttl": 30}))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeSSMClient()
	client.AddSecureStringParameter("/p/secrets/same", "pw1")
	client.AddSecureStringParameter("/p/secrets/drift", "pw2")
	client.AddError("/p/secrets/denied", errors.New("AccessDeniedException"))
	s := newDiffStore(t, client)

	ctx := context.Background()
	assert.Equal(t, syncer.StatusUnchanged, syncer.Classify(ctx, s, "/p/secrets/same", "pw1"))
	assert.Equal(t, syncer.StatusChanged, syncer.Classify(ctx, s, "/p/secrets/drift", "pw1"))
	assert.Equal(t, syncer.StatusNew, syncer.Classify(ctx, s, "/p/secrets/absent", "pw1"))
	assert.Equal(t, syncer.StatusChanged, syncer.Classify(ctx, s, "/p/secrets/denied", "pw1"))
}
