package moderation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/researchhub/researchhub"
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

	approvePaperHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeApprovePaperEndpoint(service))),
		decodeReviewRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/papers/:id/approve", "POST", approvePaperHandler)

	rejectPaperHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeRejectPaperEndpoint(service))),
		decodeReviewRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/papers/:id/reject", "POST", rejectPaperHandler)

	pendingPapersHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makePendingPapersEndpoint(service))),
		decodePageRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/papers/pending", "GET", pendingPapersHandler)

	approveCommentHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeApproveCommentEndpoint(service))),
		decodeReviewRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/comments/:id/approve", "POST", approveCommentHandler)

	rejectCommentHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeRejectCommentEndpoint(service))),
		decodeReviewRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/comments/:id/reject", "POST", rejectCommentHandler)

	commentsByStatusHandler := kithttp.NewServer(
		tokenMiddleware(auth.Admin(makeCommentsByStatusEndpoint(service))),
		decodeCommentsByStatusRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/admin/comments", "GET", commentsByStatusHandler)
}

func decodeReviewRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	req := reviewRequest{ID: id}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		return nil, err
	}
	req.Reason = body.Reason

	return req, nil
}

func decodePageRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := pageRequest{Limit: 20}
	if err := parsePage(r, &req.Offset, &req.Limit); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeCommentsByStatusRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := commentsByStatusRequest{
		Status: researchhub.CommentPending,
		Limit:  20,
	}
	if v := r.URL.Query().Get("status"); v != "" {
		req.Status = researchhub.CommentStatus(v)
	}
	if err := parsePage(r, &req.Offset, &req.Limit); err != nil {
		return nil, err
	}
	return req, nil
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
