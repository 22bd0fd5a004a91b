package papers

import (
	"context"
	"io"

	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/users"
)

var errInvalidRequest = errors.New("invalid request")

type uploadRequest struct {
	Meta UploadMeta
	File io.Reader
}

func makeUploadEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(uploadRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		caller := users.MaybeFromContext(ctx)
		return s.Upload(caller.ID, req.Meta, req.File)
	}
}

func makeGetEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		paper, err := s.IncrementViews(id)
		if err != nil {
			return nil, err
		}

		caller := users.MaybeFromContext(ctx)
		return s.view(paper, caller.ID)
	}
}

func makeSearchEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		params, ok := r.(researchhub.SearchParams)
		if !ok {
			return nil, errInvalidRequest
		}

		caller := users.MaybeFromContext(ctx)
		return s.Search(params, caller.ID)
	}
}

type pageRequest struct {
	Offset uint64
	Limit  uint64
}

func makeRecommendEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(pageRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Recommend(caller.ID, req.Offset, req.Limit)
	}
}

func makeTrendingEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(pageRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		caller := users.MaybeFromContext(ctx)
		return s.Trending(caller.ID, req.Offset, req.Limit)
	}
}

func makeMineEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(pageRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.ByUploader(caller.ID, caller.ID, req.Offset, req.Limit)
	}
}

type assignCategoriesRequest struct {
	PaperID     int
	CategoryIDs []int
}

func makeAssignCategoriesEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(assignCategoriesRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		paper, err := s.Get(req.PaperID)
		if err != nil {
			return nil, err
		}
		if !caller.IsAdmin && (paper.UploaderID == 0 || paper.UploaderID != caller.ID) {
			return nil, errors.New("not your paper", errors.Forbidden())
		}

		return s.AssignCategories(req.PaperID, req.CategoryIDs)
	}
}

func makeDeleteEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		if err := s.Delete(id, caller.ID, caller.IsAdmin); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	}
}

type commentRequest struct {
	PaperID int
	Content string
}

func makeCommentEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(commentRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Comment(req.PaperID, caller.ID, req.Content)
	}
}

type editCommentRequest struct {
	CommentID int
	Content   string
}

func makeEditCommentEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(editCommentRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.EditComment(req.CommentID, caller.ID, req.Content)
	}
}

func makeDeleteCommentEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		if err := s.DeleteComment(id, caller.ID, caller.IsAdmin); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	}
}

func makeCommentsOnEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.CommentsOn(id)
	}
}
