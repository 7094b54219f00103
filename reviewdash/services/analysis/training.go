package analysis

import (
	"sort"

	"reviewdash/reviewdash/sources/psql/models"
)

// Priority buckets used by the training summary.
const (
	CriticalPriority = 10
	HighPriority     = 9
)

type TrainingRecommendationView struct {
	StandardizedCategory string              `json:"standardized_category"`
	TrainingQuery        string              `json:"training_query"`
	TrainingPlan         models.TrainingPlan `json:"training_plan"`
}

type TrainingCategoryBucket struct {
	Category        string  `json:"category"`
	Recommendations int     `json:"recommendations"`
	TimeEstimate    float64 `json:"timeEstimate"`
}

type PriorityBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Normal   int `json:"normal"`
}

type TrainingSummary struct {
	TotalRecommendations int                      `json:"totalRecommendations"`
	TotalTimeEstimate    float64                  `json:"totalTimeEstimate"`
	ByCategory           []TrainingCategoryBucket `json:"byCategory"`
	ByPriority           PriorityBreakdown        `json:"byPriority"`
}

type TrainingAnalysis struct {
	Recommendations []TrainingRecommendationView `json:"recommendations"`
	Summary         TrainingSummary              `json:"summary"`
}

// AnalyzeTraining buckets plan items by category and priority. The time
// estimate of a plan is the sum of its metric values.
func AnalyzeTraining(records []models.TrainingRecommendation) TrainingAnalysis {
	result := TrainingAnalysis{
		Recommendations: make([]TrainingRecommendationView, 0, len(records)),
		Summary:         TrainingSummary{ByCategory: []TrainingCategoryBucket{}},
	}
	for _, rec := range records {
		plan := rec.TrainingPlan.Data()
		var estimate float64
		for _, v := range plan.Metrics {
			estimate += v
			switch {
			case v >= CriticalPriority:
				result.Summary.ByPriority.Critical++
			case v >= HighPriority:
				result.Summary.ByPriority.High++
			default:
				result.Summary.ByPriority.Normal++
			}
		}
		plan.TimeEstimate = estimate
		if plan.Recommendations == nil {
			plan.Recommendations = []string{}
		}

		result.Recommendations = append(result.Recommendations, TrainingRecommendationView{
			StandardizedCategory: rec.StandardizedCategory,
			TrainingQuery:        rec.TrainingQuery,
			TrainingPlan:         plan,
		})
		result.Summary.TotalRecommendations += len(plan.Metrics)
		result.Summary.TotalTimeEstimate += estimate
		result.Summary.ByCategory = append(result.Summary.ByCategory, TrainingCategoryBucket{
			Category:        rec.StandardizedCategory,
			Recommendations: len(plan.Metrics),
			TimeEstimate:    estimate,
		})
	}
	sort.SliceStable(result.Summary.ByCategory, func(i, j int) bool {
		a, b := result.Summary.ByCategory[i], result.Summary.ByCategory[j]
		if a.Recommendations != b.Recommendations {
			return a.Recommendations > b.Recommendations
		}
		return a.Category < b.Category
	})
	return result
}
