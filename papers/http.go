package papers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/jwt"
	"github.com/researchhub/researchhub/users"
)

const maxUploadSize = 32 << 20 // 32 MiB

type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterHTTPRoutes(srv Server, service *Service, auth *users.Authenticator, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}
	tokenMiddleware := jwt.Middleware(jwtKey)
	optionalTokenMiddleware := jwt.OptionalMiddleware(jwtKey)

	uploadHandler := kithttp.NewServer(
		optionalTokenMiddleware(auth.MaybeAuthenticated(makeUploadEndpoint(service))),
		decodeUploadRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers", "POST", uploadHandler)

	searchHandler := kithttp.NewServer(
		optionalTokenMiddleware(auth.MaybeAuthenticated(makeSearchEndpoint(service))),
		decodeSearchRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers", "GET", searchHandler)

	getHandler := kithttp.NewServer(
		optionalTokenMiddleware(auth.MaybeAuthenticated(makeGetEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers/:id", "GET", getHandler)

	recommendHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeRecommendEndpoint(service))),
		decodePageRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/recommendations", "GET", recommendHandler)

	trendingHandler := kithttp.NewServer(
		optionalTokenMiddleware(auth.MaybeAuthenticated(makeTrendingEndpoint(service))),
		decodePageRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/trending", "GET", trendingHandler)

	mineHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeMineEndpoint(service))),
		decodePageRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/me/papers", "GET", mineHandler)

	assignCategoriesHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeAssignCategoriesEndpoint(service))),
		decodeAssignCategoriesRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers/:id/categories", "POST", assignCategoriesHandler)

	deleteHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeDeleteEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers/:id", "DELETE", deleteHandler)

	commentHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeCommentEndpoint(service))),
		decodeCommentRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers/:id/comments", "POST", commentHandler)

	commentsOnHandler := kithttp.NewServer(
		makeCommentsOnEndpoint(service),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/papers/:id/comments", "GET", commentsOnHandler)

	editCommentHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeEditCommentEndpoint(service))),
		decodeEditCommentRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/comments/:id", "PUT", editCommentHandler)

	deleteCommentHandler := kithttp.NewServer(
		tokenMiddleware(auth.Authenticated(makeDeleteCommentEndpoint(service))),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/comments/:id", "DELETE", deleteCommentHandler)
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

// The upload comes in as a multipart form: a "file" part plus metadata
// fields. The file is buffered here so the handler owns its lifetime.
func decodeUploadRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errors.New("could not parse upload", errors.BadRequest(), errors.WithCause(err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("file must not be empty", errors.BadRequest())
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, err
	}

	req := uploadRequest{
		Meta: UploadMeta{
			Title:     r.FormValue("title"),
			Author:    r.FormValue("author"),
			Abstract:  r.FormValue("abstract"),
			Extension: filepath.Ext(header.Filename),
		},
		File: &buf,
	}

	if v := r.FormValue("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("year should be an integer", errors.BadRequest())
		}
		req.Meta.Year = year
	}
	if v := r.FormValue("categoryIDs"); v != "" {
		categoryIDs, err := parseIntList(v)
		if err != nil {
			return nil, err
		}
		req.Meta.CategoryIDs = categoryIDs
	}

	return req, nil
}

func decodeSearchRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	query := r.URL.Query()
	params := researchhub.SearchParams{
		Q:       query.Get("q"),
		Author:  query.Get("author"),
		OrderBy: query.Get("orderBy"),
		Limit:   20,
	}

	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("year should be an integer", errors.BadRequest())
		}
		params.Year = year
	}
	if v := query.Get("categories"); v != "" {
		categoryIDs, err := parseIntList(v)
		if err != nil {
			return nil, err
		}
		params.CategoryIDs = categoryIDs
	}
	if err := parsePage(r, &params.Offset, &params.Limit); err != nil {
		return nil, err
	}

	return params, nil
}

func decodePageRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := pageRequest{Limit: 20}
	if err := parsePage(r, &req.Offset, &req.Limit); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeAssignCategoriesRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		CategoryIDs []int `json:"categoryIDs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return assignCategoriesRequest{
		PaperID:     id,
		CategoryIDs: body.CategoryIDs,
	}, nil
}

func decodeCommentRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return commentRequest{
		PaperID: id,
		Content: body.Content,
	}, nil
}

func decodeEditCommentRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return editCommentRequest{
		CommentID: id,
		Content:   body.Content,
	}, nil
}

func parseIntList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.New("ids should be integers", errors.BadRequest())
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parsePage(r *http.Request, offset, limit *uint64) error {
	query := r.URL.Query()
	if v := query.Get("offset"); v != "" {
		o, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New("offset should be a positive integer", errors.BadRequest())
		}
		*offset = o
	}
	if v := query.Get("limit"); v != "" {
		l, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New("limit should be a positive integer", errors.BadRequest())
		}
		*limit = l
	}
	return nil
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
