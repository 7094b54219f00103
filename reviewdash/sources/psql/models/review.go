// reviewdash/sources/psql/models/review.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// CodeReview is one ingested unit of analysis. Rows are append-only.
type CodeReview struct {
	ID                   uint                        `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename             string                      `json:"filename" gorm:"type:varchar(512);not null;index"`
	RawCategory          string                      `json:"raw_category" gorm:"type:text"`
	StandardizedCategory string                      `json:"standardized_category" gorm:"type:varchar(255);not null;index"`
	RawIntent            string                      `json:"raw_intent" gorm:"type:text"`
	StandardizedIntent   string                      `json:"standardized_intent" gorm:"type:varchar(255);index"`
	Provider             string                      `json:"provider" gorm:"type:varchar(255)"`
	ProcessedTimestamp   *time.Time                  `json:"processed_timestamp,omitempty"`
	CapabilityAnalysis   datatypes.JSONSlice[string] `json:"capability_analysis"`
	SuggestedTraining    datatypes.JSONSlice[string] `json:"suggested_training"`
	WorkAreas            []ReviewWorkArea            `json:"-" gorm:"foreignKey:CodeReviewID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

func (CodeReview) TableName() string {
	return "code_reviews"
}

// RelatedWorkAreas returns the work area names in insertion order.
func (c CodeReview) RelatedWorkAreas() []string {
	out := make([]string, 0, len(c.WorkAreas))
	for _, wa := range c.WorkAreas {
		out = append(out, wa.WorkArea)
	}
	return out
}

// ReviewWorkArea flattens the related work areas of a review, one row per area.
type ReviewWorkArea struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	CodeReviewID uint   `json:"code_review_id" gorm:"not null;index"`
	WorkArea     string `json:"work_area" gorm:"type:varchar(255);not null;index"`
}

func (ReviewWorkArea) TableName() string {
	return "review_work_areas"
}
