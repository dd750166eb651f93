package user

import (
	"context"

	"github.com/your-org/storefront/internal/infrastructure/backend"
)

// Service reads and updates the signed-in user's profile
type Service struct {
	api *backend.Client
}

// NewService creates a new profile service
func NewService(api *backend.Client) *Service {
	return &Service{api: api}
}

// GetProfile returns the current user's profile
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := s.api.Get(ctx, "/api/user/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves profile changes
func (s *Service) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*Profile, error) {
	var out Profile
	if err := s.api.Put(ctx, "/api/user/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
