package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/admin-api/internal/model"
	pkgauth "github.com/clinicware/admin-api/pkg/auth"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("no rows")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ int64) error       { return nil }
func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() *Service {
	repo := &fakeUserRepo{users: map[string]*model.User{
		"admin@example.com": {
			ID:           1,
			Name:         "Admin",
			Email:        "admin@example.com",
			PasswordHash: "hashed:admin123",
			Role:         "admin",
		},
	}}
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc, fakeHasher{})
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@example.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@example.com", resp.User.Email)

	claims, err := pkgauth.NewJWTService("test-secret", time.Hour).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginFailsIdenticallyForUnknownEmailAndWrongPassword(t *testing.T) {
	svc := newTestService()

	_, unknownErr := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "admin123",
	})
	_, wrongErr := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	var unknownApp, wrongApp *apperrors.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, apperrors.ErrUnauthorized, unknownApp.Code)
	assert.Equal(t, apperrors.ErrUnauthorized, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
}

func TestMeUnknownUser(t *testing.T) {
	svc := newTestService()

	_, err := svc.Me(context.Background(), 404)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
