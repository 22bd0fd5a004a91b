package library

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/users"
)

var errInvalidRequest = errors.New("invalid request")

type listRequest struct {
	Offset uint64
	Limit  uint64
}

func makeAddEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		paperID, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		item, created, err := s.Add(caller.ID, paperID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"item":    item,
			"created": created,
		}, nil
	}
}

func makeRemoveEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		paperID, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		if err := s.Remove(caller.ID, paperID); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	}
}

func makeContainsEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		paperID, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		contains, err := s.Contains(caller.ID, paperID)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"contains": contains}, nil
	}
}

func makeListEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		req, ok := r.(listRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.List(caller.ID, req.Offset, req.Limit)
	}
}
