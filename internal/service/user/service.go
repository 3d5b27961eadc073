package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
	"github.com/clinicware/admin-api/pkg/security"
)

type Service struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   security.PasswordHasher
}

func NewService(repo repository.UserRepository, roleRepo repository.RoleRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, roleRepo: roleRepo, hasher: hasher}
}

func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email already in use", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		RoleID:       req.RoleID,
		Avatar:       req.Avatar,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("user", err)
	}
	s.attachRole(ctx, user)
	return user, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("user", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.BadRequest("invalid password", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.RoleID != nil {
		user.RoleID = req.RoleID
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("user", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		s.attachRole(ctx, u)
	}
	return users, nil
}

// attachRole loads the role entity when the user references one. A missing
// role is not an error; the legacy role name still applies.
func (s *Service) attachRole(ctx context.Context, user *model.User) {
	if user.RoleID == nil {
		return
	}
	if role, err := s.roleRepo.Get(ctx, *user.RoleID); err == nil {
		user.RoleEntity = role
	}
}

// Permissions resolves the effective permission set for a user. Users
// without a role entity, and users whose role row cannot be parsed, get the
// fail-open everything set.
func (s *Service) Permissions(ctx context.Context, user *model.User) PermissionSet {
	if user.RoleID == nil {
		return ParsePermissions("")
	}
	role, err := s.roleRepo.Get(ctx, *user.RoleID)
	if err != nil {
		return ParsePermissions("")
	}
	return ParsePermissions(role.Permissions)
}

func (s *Service) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	if _, err := s.roleRepo.GetByName(ctx, req.Name); err == nil {
		return nil, apperrors.Conflict("role name already in use", nil)
	}

	perms, err := json.Marshal(req.Permissions)
	if err != nil {
		return nil, apperrors.BadRequest("invalid permissions", err)
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: string(perms),
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

func (s *Service) GetRole(ctx context.Context, id int64) (*model.Role, error) {
	role, err := s.roleRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("role", err)
	}
	return role, nil
}

func (s *Service) UpdateRole(ctx context.Context, id int64, req *model.CreateRoleRequest) (*model.Role, error) {
	role, err := s.roleRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("role", err)
	}

	perms, err := json.Marshal(req.Permissions)
	if err != nil {
		return nil, apperrors.BadRequest("invalid permissions", err)
	}

	role.Name = req.Name
	role.Description = req.Description
	role.Permissions = string(perms)

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("role", err)
	}
	return nil
}

func (s *Service) ListRoles(ctx context.Context) ([]*model.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
