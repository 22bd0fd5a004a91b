package notifications

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

	listHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeListEndpoint(service))),
		decodeListRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/notifications", "GET", listHandler)

	unreadHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeUnreadEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/notifications/unread", "GET", unreadHandler)

	countUnreadHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeCountUnreadEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/notifications/unread/count", "GET", countUnreadHandler)

	markReadHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeMarkReadEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/notifications/:id/read", "POST", markReadHandler)

	markAllReadHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeMarkAllReadEndpoint(service))),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/me/notifications/read", "POST", markAllReadHandler)

	deleteHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeDeleteEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/notifications/:id", "DELETE", deleteHandler)
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
