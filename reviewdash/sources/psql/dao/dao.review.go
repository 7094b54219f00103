// reviewdash/sources/psql/dao/dao.review.go
package dao

import (
	"context"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/gorm"
)

type ReviewDAO struct {
	DB *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{DB: db}
}

// CreateReview inserts the review together with its work area rows.
func (dao *ReviewDAO) CreateReview(ctx context.Context, review *models.CodeReview) error {
	return dao.DB.WithContext(ctx).Create(review).Error
}

// DeleteAllReviews clears reviews and their work area rows.
func (dao *ReviewDAO) DeleteAllReviews(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ReviewWorkArea{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.CodeReview{}).Error
	})
}

func (dao *ReviewDAO) GetAllReviews(ctx context.Context) ([]models.CodeReview, error) {
	var reviews []models.CodeReview
	err := dao.DB.WithContext(ctx).Preload("WorkAreas").Order("id asc").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetRecentReviews returns up to limit reviews, newest processed first.
// Reviews without a timestamp sort last.
func (dao *ReviewDAO) GetRecentReviews(ctx context.Context, limit int) ([]models.CodeReview, error) {
	var reviews []models.CodeReview
	err := dao.DB.WithContext(ctx).
		Preload("WorkAreas").
		Order("processed_timestamp IS NULL, processed_timestamp DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (dao *ReviewDAO) CountReviews(ctx context.Context) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).Model(&models.CodeReview{}).Count(&n).Error
	return n, err
}

func (dao *ReviewDAO) CountDistinctCategories(ctx context.Context) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).
		Model(&models.CodeReview{}).
		Where("standardized_category <> ''").
		Distinct("standardized_category").
		Count(&n).Error
	return n, err
}

// CountDistinctWorkAreas counts unique entries across every review's work area list.
func (dao *ReviewDAO) CountDistinctWorkAreas(ctx context.Context) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).
		Model(&models.ReviewWorkArea{}).
		Distinct("work_area").
		Count(&n).Error
	return n, err
}

func (dao *ReviewDAO) GroupByCategory(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, dao.DB, &models.CodeReview{}, "standardized_category", "COUNT(*)")
}

func (dao *ReviewDAO) GroupByIntent(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, dao.DB, &models.CodeReview{}, "standardized_intent", "COUNT(*)")
}

// GroupByWorkArea counts, per work area, the reviews that mention it.
func (dao *ReviewDAO) GroupByWorkArea(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, dao.DB, &models.ReviewWorkArea{}, "work_area", "COUNT(DISTINCT code_review_id)")
}

// GetAllWorkAreaRows returns the flattened (review, work area) pairs.
func (dao *ReviewDAO) GetAllWorkAreaRows(ctx context.Context) ([]models.ReviewWorkArea, error) {
	var rows []models.ReviewWorkArea
	err := dao.DB.WithContext(ctx).Order("code_review_id asc, id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDuplicateFilenames lists filenames stored on more than one review row.
func (dao *ReviewDAO) FindDuplicateFilenames(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := dao.DB.WithContext(ctx).
		Model(&models.CodeReview{}).
		Select("filename AS name, COUNT(*) AS count").
		Group("filename").
		Having("COUNT(*) > 1").
		Order("count DESC").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
