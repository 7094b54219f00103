// reviewdash/sources/psql/dao/dao.capability.go
package dao

import (
	"context"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/gorm"
)

type CapabilityDAO struct {
	DB *gorm.DB
}

func NewCapabilityDAO(db *gorm.DB) *CapabilityDAO {
	return &CapabilityDAO{DB: db}
}

func (dao *CapabilityDAO) CreateCapability(ctx context.Context, c *models.UserCapability) error {
	return dao.DB.WithContext(ctx).Create(c).Error
}

func (dao *CapabilityDAO) DeleteAllCapabilities(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Where("1 = 1").Delete(&models.UserCapability{}).Error
}

func (dao *CapabilityDAO) GetAllCapabilities(ctx context.Context) ([]models.UserCapability, error) {
	var caps []models.UserCapability
	err := dao.DB.WithContext(ctx).Order("standardized_category asc, id asc").Find(&caps).Error
	if err != nil {
		return nil, err
	}
	return caps, nil
}

// GroupByCategory counts user queries per standardized category.
func (dao *CapabilityDAO) GroupByCategory(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, dao.DB, &models.UserCapability{}, "standardized_category", "COUNT(*)")
}
