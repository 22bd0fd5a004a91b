package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/researchhub/researchhub/errors"
)

type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterHTTPRoutes(srv Server, service *Service) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	listHandler := kithttp.NewServer(
		makeListEndpoint(service),
		decodeListRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/categories", "GET", listHandler)

	getHandler := kithttp.NewServer(
		makeGetEndpoint(service),
		decodeGetRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/categories/:id", "GET", getHandler)
}

func decodeListRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

func decodeGetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	return id, nil
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
