package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepo interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key string, value datatypes.JSON) (*models.Setting, error)
	Delete(ctx context.Context, key string) (bool, error)
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepo(db *gorm.DB) SettingRepo { return &settingRepo{db: db} }

func (r *settingRepo) List(ctx context.Context) ([]models.Setting, error) {
	var list []models.Setting
	err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&list).Error
	return list, err
}

func (r *settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	err := r.db.WithContext(ctx).First(&s, "setting_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *settingRepo) Upsert(ctx context.Context, key string, value datatypes.JSON) (*models.Setting, error) {
	rec := models.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *settingRepo) Delete(ctx context.Context, key string) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Setting{}, "setting_key = ?", key)
	return tx.RowsAffected > 0, tx.Error
}
