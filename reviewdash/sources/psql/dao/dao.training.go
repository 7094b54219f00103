// reviewdash/sources/psql/dao/dao.training.go
package dao

import (
	"context"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/gorm"
)

type TrainingDAO struct {
	DB *gorm.DB
}

func NewTrainingDAO(db *gorm.DB) *TrainingDAO {
	return &TrainingDAO{DB: db}
}

func (dao *TrainingDAO) CreateRecommendation(ctx context.Context, rec *models.TrainingRecommendation) error {
	return dao.DB.WithContext(ctx).Create(rec).Error
}

func (dao *TrainingDAO) DeleteAllRecommendations(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Where("1 = 1").Delete(&models.TrainingRecommendation{}).Error
}

func (dao *TrainingDAO) GetAllRecommendations(ctx context.Context) ([]models.TrainingRecommendation, error) {
	var recs []models.TrainingRecommendation
	err := dao.DB.WithContext(ctx).Order("standardized_category asc").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
