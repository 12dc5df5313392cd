package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

const minPasswordLen = 8

type AuthService struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenProvider

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

type LoginResult struct {
	User            *models.User
	AccessToken     string
	AccessExpiresAt time.Time
}

func NewAuthService(users UserRepo, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrValidation
	}
	return email, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.createUser(ctx, name, email, password, models.RoleCustomer)
}

// EnsureAdmin создаёт администратора, если пользователя с таким email ещё нет.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, bool, error) {
	norm, err := normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.users.GetByEmail(ctx, norm)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	u, err := s.createUser(ctx, "Administrator", norm, password, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, ErrValidation
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := &models.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.log.Info("Пользователь зарегистрирован", zap.Uint("user_id", u.ID), zap.String("role", string(role)))
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	access, exp, err := s.tokens.SignAccess(ctx, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, AccessToken: access, AccessExpiresAt: exp}, nil
}

func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}
