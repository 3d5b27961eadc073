package auth

import (
	"context"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	"github.com/clinicware/admin-api/pkg/auth"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
	"github.com/clinicware/admin-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   *auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc *auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{userRepo: userRepo, jwtSvc: jwtSvc, hasher: hasher}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password fail identically so the endpoint does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("user", err)
	}
	return user, nil
}
