// reviewdash/sources/psql/dao/dao.import_run.go
package dao

import (
	"context"
	"reviewdash/reviewdash/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportRunDAO struct {
	DB *gorm.DB
}

func NewImportRunDAO(db *gorm.DB) *ImportRunDAO {
	return &ImportRunDAO{DB: db}
}

func (dao *ImportRunDAO) CreateImportRun(ctx context.Context, run *models.ImportRun) error {
	return dao.DB.WithContext(ctx).Create(run).Error
}

// ListRecentImportRuns returns up to limit runs, newest first.
func (dao *ImportRunDAO) ListRecentImportRuns(ctx context.Context, limit int) ([]models.ImportRun, error) {
	var runs []models.ImportRun
	err := dao.DB.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (dao *ImportRunDAO) GetImportRunByID(ctx context.Context, id uuid.UUID) (*models.ImportRun, error) {
	var run models.ImportRun
	err := dao.DB.WithContext(ctx).First(&run, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
