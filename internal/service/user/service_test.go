package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/admin-api/internal/model"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return errors.New("no rows")
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles map[int64]*model.Role
}

func (r *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	role.ID = int64(len(r.roles) + 1)
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) Get(_ context.Context, id int64) (*model.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return role, nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeRoleRepo) Update(_ context.Context, role *model.Role) error {
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id int64) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]*model.Role, error) {
	var out []*model.Role
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password too short")
	}
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeRoleRepo{roles: map[int64]*model.Role{}}, fakeHasher{})

	user, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name:     "Dr. Mehta",
		Email:    "mehta@example.com",
		Password: "dentist123",
		Role:     "dentist",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:dentist123", user.PasswordHash)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: 1, Email: "taken@example.com"})
	svc := NewService(repo, &fakeRoleRepo{roles: map[int64]*model.Role{}}, fakeHasher{})

	_, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name:     "Dup",
		Email:    "taken@example.com",
		Password: "password1",
		Role:     "receptionist",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestPermissionsWithoutRoleAllowsAll(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeRoleRepo{roles: map[int64]*model.Role{}}, fakeHasher{})

	set := svc.Permissions(context.Background(), &model.User{ID: 1, Role: "receptionist"})
	assert.True(t, set.AllowsAll())
}

func TestPermissionsFromRole(t *testing.T) {
	roleID := int64(5)
	roleRepo := &fakeRoleRepo{roles: map[int64]*model.Role{
		roleID: {ID: roleID, Name: "front-desk", Permissions: `{"patients": true, "reports": false}`},
	}}
	svc := NewService(newFakeUserRepo(), roleRepo, fakeHasher{})

	set := svc.Permissions(context.Background(), &model.User{ID: 1, RoleID: &roleID})
	assert.True(t, set.Can("patients"))
	assert.False(t, set.Can("reports"))
}

func TestPermissionsMissingRoleFailsOpen(t *testing.T) {
	roleID := int64(404)
	svc := NewService(newFakeUserRepo(), &fakeRoleRepo{roles: map[int64]*model.Role{}}, fakeHasher{})

	set := svc.Permissions(context.Background(), &model.User{ID: 1, RoleID: &roleID})
	assert.True(t, set.AllowsAll())
}

func TestCreateRoleSerializesPermissions(t *testing.T) {
	roleRepo := &fakeRoleRepo{roles: map[int64]*model.Role{}}
	svc := NewService(newFakeUserRepo(), roleRepo, fakeHasher{})

	role, err := svc.CreateRole(context.Background(), &model.CreateRoleRequest{
		Name:        "front-desk",
		Permissions: map[string]bool{"patients": true},
	})
	require.NoError(t, err)

	set := ParsePermissions(role.Permissions)
	assert.True(t, set.Can("patients"))
	assert.False(t, set.Can("reports"))

	_, err = svc.CreateRole(context.Background(), &model.CreateRoleRequest{
		Name:        "front-desk",
		Permissions: map[string]bool{},
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}
