package auth

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/users"
)

var errInvalidRequest = errors.New("invalid request")

type suspendRequest struct {
	ID     int
	Reason string
}

func makeMeEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		return s.Get(caller.ID)
	}
}

func makeUpdateProfileEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		caller, err := users.FromContext(ctx)
		if err != nil {
			return nil, err
		}

		update, ok := r.(ProfileUpdate)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.UpdateProfile(caller.ID, update)
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

func makeListEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.List()
	}
}

func makeSuspendEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(suspendRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Suspend(req.ID, req.Reason)
	}
}

func makeActivateEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Activate(id)
	}
}

func makeDashboardEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.DashboardStats()
	}
}

func makeDeleteUserEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		id, ok := r.(int)
		if !ok {
			return nil, errInvalidRequest
		}

		if err := s.DeleteUser(id); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	}
}
