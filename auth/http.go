package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/jwt"
	"github.com/researchhub/researchhub/users"
)

type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterHTTPRoutes(srv Server, service *Service, auth *users.Authenticator, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}
	tokenMiddleware := jwt.Middleware(jwtKey)

	meHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeMeEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/me", "GET", meHandler)

	updateProfileHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeUpdateProfileEndpoint(service))),
		decodeUpdateProfileRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/me/profile", "PUT", updateProfileHandler)

	listHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeListEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/users", "GET", listHandler)

	getHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeGetEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/users/:id", "GET", getHandler)

	suspendHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeSuspendEndpoint(service))),
		decodeSuspendRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/users/:id/suspend", "POST", suspendHandler)

	activateHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeActivateEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/users/:id/activate", "POST", activateHandler)

	deleteHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeDeleteUserEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/users/:id", "DELETE", deleteHandler)

	dashboardHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeDashboardEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/dashboard", "GET", dashboardHandler)
}

func decodeEmptyRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

func decodeIDRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	return id, nil
}

func decodeUpdateProfileRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		return nil, errors.New("could not read profile", errors.BadRequest(), errors.WithCause(err))
	}

	return update, nil
}

func decodeSuspendRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	req := suspendRequest{ID: id}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		return nil, errors.New("could not read request", errors.BadRequest(), errors.WithCause(err))
	}
	req.Reason = body.Reason

	return req, nil
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
	}
	w.WriteHeader(statusCode)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
