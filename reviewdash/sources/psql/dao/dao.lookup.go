// reviewdash/sources/psql/dao/dao.lookup.go
package dao

import (
	"context"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/gorm"
)

type IntentDAO struct {
	DB *gorm.DB
}

func NewIntentDAO(db *gorm.DB) *IntentDAO {
	return &IntentDAO{DB: db}
}

func (dao *IntentDAO) CreateIntent(ctx context.Context, intent *models.Intent) error {
	return dao.DB.WithContext(ctx).Create(intent).Error
}

func (dao *IntentDAO) DeleteAllIntents(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Where("1 = 1").Delete(&models.Intent{}).Error
}

func (dao *IntentDAO) GetAllIntents(ctx context.Context) ([]models.Intent, error) {
	var intents []models.Intent
	err := dao.DB.WithContext(ctx).Order("standardized_category asc").Find(&intents).Error
	if err != nil {
		return nil, err
	}
	return intents, nil
}

type WorkAreaDAO struct {
	DB *gorm.DB
}

func NewWorkAreaDAO(db *gorm.DB) *WorkAreaDAO {
	return &WorkAreaDAO{DB: db}
}

func (dao *WorkAreaDAO) CreateWorkArea(ctx context.Context, wa *models.WorkArea) error {
	return dao.DB.WithContext(ctx).Create(wa).Error
}

func (dao *WorkAreaDAO) DeleteAllWorkAreas(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Where("1 = 1").Delete(&models.WorkArea{}).Error
}

func (dao *WorkAreaDAO) GetAllWorkAreas(ctx context.Context) ([]models.WorkArea, error) {
	var areas []models.WorkArea
	err := dao.DB.WithContext(ctx).Order("standardized_work_area asc").Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}
