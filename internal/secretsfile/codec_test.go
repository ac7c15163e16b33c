package secretsfile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserrors "github.com/stackmill/secretsync/internal/errors"
	"github.com/stackmill/secretsync/internal/secretsfile"
)

func TestDecodeSimpleMapping(t *testing.T) {
	t.Parallel()

	doc, err := secretsfile.Decode([]byte("db: pw1\napi:\n  key: abc\n  ttl: 30\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"db", "api"}, doc.Names())

	db, ok := doc.Get("db")
	require.True(t, ok)
	assert.Equal(t, "pw1", db)

	api, ok := doc.Get("api")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"key": "abc", "ttl": 30}, api)
}

func TestDecodeRejectsNonMappingRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"scalar", "just a string"},
		{"sequence", "- one\n- two\n"},
		{"null", "null"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := secretsfile.Decode([]byte(tt.content))
			require.Error(t, err)

			var formatErr sserrors.FormatError
			assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %T", err)
		})
	}
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	t.Parallel()

	doc, err := secretsfile.Decode([]byte("zeta: 1\nalpha: 2\nmiddle: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "middle"}, doc.Names())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	doc := secretsfile.NewDocument()
	doc.Set("password", "hunter2")
	doc.Set("port", 5432)
	doc.Set("enabled", true)
	doc.Set("api", map[string]interface{}{
		"key": "abc",
		"ttl": 30,
		"hosts": []interface{}{
			"a.example.com",
			"b.example.com",
		},
	})

	content, err := secretsfile.Encode(doc)
	require.NoError(t, err)

	decoded, err := secretsfile.Decode(content)
	require.NoError(t, err)

	assert.Equal(t, doc.Names(), decoded.Names())
	for _, name := range doc.Names() {
		want, _ := doc.Get(name)
		got, ok := decoded.Get(name)
		require.True(t, ok, "missing entry %s after round trip", name)
		assert.True(t, secretsfile.Equal(want, got), "entry %s changed across round trip: %v != %v", name, want, got)
	}
}

func TestEncodeValueStringsAsIs(t *testing.T) {
	t.Parallel()

	raw, err := secretsfile.EncodeValue("pw1")
	require.NoError(t, err)
	assert.Equal(t, "pw1", raw)
}

func TestEncodeValueStructuredRoundTrip(t *testing.T) {
	t.Parallel()

	value := map[string]interface{}{"key": "abc", "ttl": 30}

	raw, err := secretsfile.EncodeValue(value)
	require.NoError(t, err)

	decoded, err := secretsfile.DecodeValue(raw)
	require.NoError(t, err)
	assert.True(t, secretsfile.Equal(value, decoded))
}

func TestDecodeValueAcceptsJSONEncoding(t *testing.T) {
	t.Parallel()

	decoded, err := secretsfile.DecodeValue(`{"key":"abc","ttl":30}`)
	require.NoError(t, err)
	assert.True(t, secretsfile.Equal(map[string]interface{}{"key": "abc", "ttl": 30}, decoded))

	scalar, err := secretsfile.DecodeValue(`"pw1"`)
	require.NoError(t, err)
	assert.Equal(t, "pw1", scalar)
}
