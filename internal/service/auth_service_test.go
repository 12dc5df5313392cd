package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "h:"+p }

type fakeTokens struct {
	signed []uint
}

func (f *fakeTokens) SignAccess(ctx context.Context, userID uint, role models.Role, ttl time.Duration) (string, time.Time, error) {
	f.signed = append(f.signed, userID)
	return "tok-" + string(role), time.Now().Add(ttl), nil
}

func (f *fakeTokens) ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error) {
	return nil, errors.New("not used")
}

func newAuth(users UserRepo) (*AuthService, *fakeTokens) {
	tokens := &fakeTokens{}
	return NewAuthService(users, plainHasher{}, tokens, time.Hour, zap.NewNop()), tokens
}

func TestRegister(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByEmail", mock.Anything, "user@shop.local").Return(nil, nil).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "user@shop.local" && u.Password == "h:password1" && u.Role == models.RoleCustomer
	})).Return(nil).Once()

	svc, _ := newAuth(users)
	u, err := svc.Register(context.Background(), "User", "  User@Shop.Local ", "password1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	users.AssertExpectations(t)
}

func TestRegister_Rejects(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByEmail", mock.Anything, "taken@shop.local").Return(&models.User{ID: 9}, nil)

	svc, _ := newAuth(users)
	_, err := svc.Register(context.Background(), "X", "taken@shop.local", "password1")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Register(context.Background(), "X", "not-an-email", "password1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "X", "new@shop.local", strings.Repeat("a", minPasswordLen-1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	users := &mockUsers{}
	admin := &models.User{ID: 3, Email: "admin@shop.local", Password: "h:secret123", Role: models.RoleAdmin}
	users.On("GetByEmail", mock.Anything, "admin@shop.local").Return(admin, nil)
	users.On("GetByEmail", mock.Anything, "nobody@shop.local").Return(nil, nil)

	svc, tokens := newAuth(users)

	res, err := svc.Login(context.Background(), "Admin@shop.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", res.AccessToken)
	assert.Equal(t, []uint{3}, tokens.signed)

	_, err = svc.Login(context.Background(), "admin@shop.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "nobody@shop.local", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByEmail", mock.Anything, "root@shop.local").Return(nil, nil).Twice()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).Return(nil).Once()

	svc, _ := newAuth(users)
	u, created, err := svc.EnsureAdmin(context.Background(), "root@shop.local", "rootroot")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, u.Role)
	users.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByID", mock.Anything, uint(5)).Return(&models.User{ID: 5}, nil)

	svc, _ := newAuth(users)
	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	u, err := svc.Me(WithUserID(context.Background(), 5))
	require.NoError(t, err)
	assert.Equal(t, uint(5), u.ID)
}
