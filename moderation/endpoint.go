package moderation

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/users"
)

var errInvalidRequest = errors.New("invalid request")

type reviewRequest struct {
	ID     int
	Reason string
}

func makeApprovePaperEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(reviewRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.ApprovePaper(req.ID, caller.ID)
	}
}

func makeRejectPaperEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(reviewRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.RejectPaper(req.ID, req.Reason, caller.ID)
	}
}

func makeApproveCommentEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(reviewRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.ApproveComment(req.ID, caller.ID)
	}
}

func makeRejectCommentEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(reviewRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.RejectComment(req.ID, req.Reason, caller.ID)
	}
}

type pageRequest struct {
	Offset uint64
	Limit  uint64
}

func makePendingPapersEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(pageRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.PendingPapers(req.Offset, req.Limit)
	}
}

type commentsByStatusRequest struct {
	Status researchhub.CommentStatus
	Offset uint64
	Limit  uint64
}

func makeCommentsByStatusEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(commentsByStatusRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.CommentsByStatus(req.Status, req.Offset, req.Limit)
	}
}
