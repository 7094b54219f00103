// reviewdash/sources/psql/models/capability.go
package models

import (
	"fmt"

	"gorm.io/datatypes"
)

const (
	MinScore = 0
	MaxScore = 10
)

// CapabilityScores maps a capability name to a 0-10 score.
type CapabilityScores map[string]float64

func (s CapabilityScores) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("capability scores are empty")
	}
	for name, score := range s {
		if name == "" {
			return fmt.Errorf("capability name is empty")
		}
		if score < MinScore || score > MaxScore {
			return fmt.Errorf("capability %q score %v out of range [%d, %d]", name, score, MinScore, MaxScore)
		}
	}
	return nil
}

// UserCapability holds the scores derived for one (category, user query) pair.
type UserCapability struct {
	ID                   uint                                 `json:"id" gorm:"primaryKey;autoIncrement"`
	StandardizedCategory string                               `json:"standardized_category" gorm:"type:varchar(255);not null;uniqueIndex:idx_capability_category_query"`
	UserQuery            string                               `json:"user_query" gorm:"type:varchar(1024);not null;uniqueIndex:idx_capability_category_query"`
	CapabilityAnalysis   datatypes.JSONType[CapabilityScores] `json:"capability_analysis"`
}

func (UserCapability) TableName() string {
	return "user_capabilities"
}
