package service

import (
	"context"
	"encoding/json"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/datatypes"
)

type SettingsService interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Put(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error)
	Delete(ctx context.Context, key string) error
}

type settingsService struct {
	repo repository.SettingRepo
}

func NewSettingsService(repo repository.SettingRepo) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) List(ctx context.Context) ([]models.Setting, error) {
	return s.repo.List(ctx)
}

func (s *settingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	st, err := s.repo.Get(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrSettingNotFound
	}
	return st, nil
}

func (s *settingsService) Put(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 || !json.Valid(value) {
		return nil, ErrValidation
	}
	return s.repo.Upsert(ctx, key, datatypes.JSON(value))
}

func (s *settingsService) Delete(ctx context.Context, key string) error {
	ok, err := s.repo.Delete(ctx, strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if !ok {
		return ErrSettingNotFound
	}
	return nil
}
