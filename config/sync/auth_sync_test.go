package sync

import (
	"encoding/json"
	"testing"

	"codexmgr/config/models"
	"codexmgr/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAuth(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestUpdateAuth(t *testing.T) {
	t.Run("empty file gets the key", func(t *testing.T) {
		out, err := UpdateAuth(nil, models.StringPtr("sk-x"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{AuthKey: "sk-x"}, decodeAuth(t, out))
	})

	t.Run("foreign keys are preserved", func(t *testing.T) {
		original := []byte(`{"tokens": {"id_token": "abc"}, "last_refresh": "2025-01-01", "OPENAI_API_KEY": "old"}`)
		out, err := UpdateAuth(original, models.StringPtr("sk-new"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"tokens":       map[string]any{"id_token": "abc"},
			"last_refresh": "2025-01-01",
			AuthKey:        "sk-new",
		}, decodeAuth(t, out))
	})

	t.Run("nil or empty key removes it", func(t *testing.T) {
		original := []byte(`{"OPENAI_API_KEY": "old", "other": 1}`)
		for _, key := range []*string{nil, models.StringPtr("")} {
			out, err := UpdateAuth(original, key)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"other": float64(1)}, decodeAuth(t, out))
		}
	})

	t.Run("removing an absent key is a no-op", func(t *testing.T) {
		original := []byte(`{"other": true}`)
		out, err := UpdateAuth(original, nil)
		require.NoError(t, err)
		assert.JSONEq(t, string(original), string(out))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := UpdateAuth([]byte(`{"a":`), models.StringPtr("k"))
		assert.ErrorIs(t, err, errs.ErrParse)
	})

	t.Run("non-object JSON", func(t *testing.T) {
		_, err := UpdateAuth([]byte(`["a"]`), models.StringPtr("k"))
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestReadAuthKey(t *testing.T) {
	key, err := ReadAuthKey(nil)
	require.NoError(t, err)
	assert.Nil(t, key)

	key, err = ReadAuthKey([]byte(`{"OPENAI_API_KEY": null}`))
	require.NoError(t, err)
	assert.Nil(t, key)

	key, err = ReadAuthKey([]byte(`{"OPENAI_API_KEY": "sk-x"}`))
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "sk-x", *key)

	_, err = ReadAuthKey([]byte(`"str"`))
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}
