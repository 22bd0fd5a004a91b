package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	ed := NewEncodeDecoder([]byte("test-key"))

	token, err := ed.Encode(42, true)
	require.NoError(t, err)

	claims, err := ed.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestDecode_WrongKey(t *testing.T) {
	token, err := NewEncodeDecoder([]byte("key-1")).Encode(1, false)
	require.NoError(t, err)

	_, err = NewEncodeDecoder([]byte("key-2")).Decode(token)
	assert.Error(t, err)
}
