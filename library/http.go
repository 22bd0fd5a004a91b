package library

import (
	"context"
	"encoding/json"
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

	addHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeAddEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/library/:id", "POST", addHandler)

	removeHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeRemoveEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/library/:id", "DELETE", removeHandler)

	containsHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeContainsEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/library/:id", "GET", containsHandler)

	listHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeListEndpoint(service))),
		decodeListRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/library", "GET", listHandler)
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

func decodeListRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req listRequest
	query := r.URL.Query()
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, errors.New("offset should be a positive integer", errors.BadRequest())
		}
		req.Offset = offset
	}
	req.Limit = 20
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, errors.New("limit should be a positive integer", errors.BadRequest())
		}
		req.Limit = limit
	}

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
