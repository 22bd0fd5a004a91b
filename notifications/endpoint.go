package notifications

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

		return s.ByRecipient(caller.ID, req.Offset, req.Limit)
	}
}

func makeUnreadEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		return s.Unread(caller.ID)
	}
}

func makeCountUnreadEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		count, err := s.CountUnread(caller.ID)
		if err != nil {
			return nil, err
		}
		return map[string]uint64{"count": count}, nil
	}
}

func makeMarkReadEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.MarkRead(id, caller.ID)
	}
}

func makeMarkAllReadEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.MarkAllRead(caller.ID); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
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

		if err := s.Delete(id, caller.ID); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	}
}
