package users

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/jwt"
)

var contextKey = "user"

// User is the request-scoped view of the caller.
type User struct {
	ID      int
	IsAdmin bool
}

func FromContext(ctx context.Context) (User, error) {
	v := ctx.Value(contextKey)
	if v == nil {
		return User{}, errors.New("no user", errors.WithCode(http.StatusUnauthorized))
	}

	user, ok := v.(User)
	if !ok {
		return User{}, errors.New("invalid user", errors.WithCode(http.StatusUnauthorized))
	}

	return user, nil
}

// MaybeFromContext returns the caller when authenticated and a zero
// user otherwise. Anonymous access is a valid state on read paths.
func MaybeFromContext(ctx context.Context) User {
	user, err := FromContext(ctx)
	if err != nil {
		return User{}
	}
	return user
}

func AddToContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey, user)
}

func extractClaims(ctx context.Context) (*jwt.Claims, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return nil, errors.New("no user", errors.WithCode(http.StatusUnauthorized))
	}

	rhClaims, ok := claims.(*jwt.Claims)
	if !ok {
		return nil, errors.New("invalid claims", errors.WithCode(http.StatusUnauthorized))
	}

	return rhClaims, nil
}

// UserService is the slice of the accounts service the authenticator
// needs: resolving a user id to an account.
type UserService interface {
	Get(id int) (*researchhub.User, error)
}

type Authenticator struct {
	service UserService
}

func NewAuthenticator(service UserService) *Authenticator {
	return &Authenticator{service: service}
}

// Authenticated requires a valid token and a known, active account.
func (a *Authenticator) Authenticated(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		claims, err := extractClaims(ctx)
		if err != nil {
			return nil, err
		}

		user, err := a.service.Get(claims.UserID)
		if err != nil {
			return nil, errors.New("unknown user", errors.WithCode(http.StatusUnauthorized), errors.WithCause(err))
		}
		if !user.Active {
			return nil, errors.New("account suspended", errors.Forbidden())
		}

		ctx = AddToContext(ctx, User{ID: user.ID, IsAdmin: user.IsAdmin})
		return next(ctx, request)
	}
}

// Admin requires an authenticated caller holding the admin role.
func (a *Authenticator) Admin(next endpoint.Endpoint) endpoint.Endpoint {
	return a.Authenticated(func(ctx context.Context, request interface{}) (interface{}, error) {
		user, err := FromContext(ctx)
		if err != nil {
			return nil, err
		}

		if !user.IsAdmin {
			return nil, errors.New("admin privilege required", errors.Forbidden())
		}

		return next(ctx, request)
	})
}

// MaybeAuthenticated loads the caller when a token is present and lets
// the request through anonymously otherwise.
func (a *Authenticator) MaybeAuthenticated(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		if _, err := extractClaims(ctx); err != nil {
			return next(ctx, request)
		}

		return a.Authenticated(next)(ctx, request)
	}
}
