// reviewdash/sources/psql/models/training.go
package models

import (
	"fmt"
	"sort"
	"strconv"

	"gorm.io/datatypes"
)

// TrainingPlan is the stored shape of a category's training recommendation.
type TrainingPlan struct {
	Metrics         map[string]float64 `json:"metrics"`
	Recommendations []string           `json:"recommendations"`
	TimeEstimate    float64            `json:"timeEstimate"`
}

// NewTrainingPlan validates the priorities and derives recommendations and
// the time estimate. Recommendations are ordered by priority, then name.
func NewTrainingPlan(metrics map[string]float64) (TrainingPlan, error) {
	if len(metrics) == 0 {
		return TrainingPlan{}, fmt.Errorf("training plan is empty")
	}
	names := make([]string, 0, len(metrics))
	var total float64
	for name, priority := range metrics {
		if name == "" {
			return TrainingPlan{}, fmt.Errorf("training item name is empty")
		}
		if priority < MinScore || priority > MaxScore {
			return TrainingPlan{}, fmt.Errorf("training item %q priority %v out of range [%d, %d]", name, priority, MinScore, MaxScore)
		}
		names = append(names, name)
		total += priority
	}
	sort.Slice(names, func(i, j int) bool {
		if metrics[names[i]] != metrics[names[j]] {
			return metrics[names[i]] > metrics[names[j]]
		}
		return names[i] < names[j]
	})
	recs := make([]string, 0, len(names))
	for _, name := range names {
		recs = append(recs, fmt.Sprintf("%s (Priority: %s)", name, strconv.FormatFloat(metrics[name], 'f', -1, 64)))
	}
	return TrainingPlan{Metrics: metrics, Recommendations: recs, TimeEstimate: total}, nil
}

// TrainingRecommendation is one per standardized category.
type TrainingRecommendation struct {
	ID                   uint                             `json:"id" gorm:"primaryKey;autoIncrement"`
	StandardizedCategory string                           `json:"standardized_category" gorm:"type:varchar(255);not null;unique"`
	TrainingQuery        string                           `json:"training_query" gorm:"type:text;default:''"`
	TrainingPlan         datatypes.JSONType[TrainingPlan] `json:"training_plan"`
}

func (TrainingRecommendation) TableName() string {
	return "training_recommendations"
}
