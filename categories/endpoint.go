package categories

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub/errors"
)

var errInvalidRequest = errors.New("invalid request")

func makeListEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.List()
	}
}

func makeGetEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Get(id)
	}
}
