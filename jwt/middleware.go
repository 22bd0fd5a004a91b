package jwt

import (
	"context"

	"github.com/golang-jwt/jwt/v4"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
)

func Middleware(key []byte) endpoint.Middleware {
	return kitjwt.NewParser(func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.SigningMethodHS256, func() jwt.Claims { return &Claims{} })
}

// OptionalMiddleware only runs the jwt parser when a token is present,
// so anonymous callers reach the endpoint with no claims in context.
func OptionalMiddleware(key []byte) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			// tokenString is stored in the context by the transport handlers.
			_, ok := ctx.Value(kitjwt.JWTTokenContextKey).(string)
			if !ok {
				return next(ctx, request)
			}

			return Middleware(key)(next)(ctx, request)
		}
	}
}
