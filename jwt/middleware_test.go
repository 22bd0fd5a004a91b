package jwt

import (
	"context"
	"testing"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsEndpoint(t *testing.T) (func(context.Context, interface{}) (interface{}, error), *Claims) {
	captured := &Claims{}
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		claims, ok := ctx.Value(kitjwt.JWTClaimsContextKey).(*Claims)
		require.True(t, ok, "claims should be in the context")
		*captured = *claims
		return nil, nil
	}, captured
}

func TestMiddleware(t *testing.T) {
	key := []byte("test-key")
	token, err := NewEncodeDecoder(key).Encode(42, true)
	require.NoError(t, err)

	ep, claims := claimsEndpoint(t)
	ctx := context.WithValue(context.Background(), kitjwt.JWTTokenContextKey, token)
	_, err = Middleware(key)(ep)(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestMiddleware_WrongKey(t *testing.T) {
	token, err := NewEncodeDecoder([]byte("key-1")).Encode(1, false)
	require.NoError(t, err)

	ep := func(ctx context.Context, request interface{}) (interface{}, error) {
		t.Fatal("endpoint should not be reached")
		return nil, nil
	}
	ctx := context.WithValue(context.Background(), kitjwt.JWTTokenContextKey, token)
	_, err = Middleware([]byte("key-2"))(ep)(ctx, nil)
	assert.Error(t, err)
}

func TestOptionalMiddleware(t *testing.T) {
	key := []byte("test-key")

	// No token: the endpoint runs without claims.
	reached := false
	ep := func(ctx context.Context, request interface{}) (interface{}, error) {
		reached = true
		_, ok := ctx.Value(kitjwt.JWTClaimsContextKey).(*Claims)
		assert.False(t, ok)
		return nil, nil
	}
	_, err := OptionalMiddleware(key)(ep)(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, reached)

	// Token present: claims are parsed as usual.
	token, err := NewEncodeDecoder(key).Encode(7, false)
	require.NoError(t, err)

	claimsEp, claims := claimsEndpoint(t)
	ctx := context.WithValue(context.Background(), kitjwt.JWTTokenContextKey, token)
	_, err = OptionalMiddleware(key)(claimsEp)(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
}
