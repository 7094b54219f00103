package analysis

import (
	"sort"

	"reviewdash/reviewdash/sources/psql/models"
)

// StrongThreshold is the lowest score classified as strong.
const StrongThreshold = 8

type CapabilityScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type CapabilityProfile struct {
	StandardizedCategory string            `json:"standardizedCategory"`
	UserQuery            string            `json:"userQuery"`
	Scores               []CapabilityScore `json:"scores"`
	Strong               []string          `json:"strong"`
	Weak                 []string          `json:"weak"`
	OverallScore         float64           `json:"overallScore"`
}

type CategoryAverage struct {
	Category     string  `json:"category"`
	AverageScore float64 `json:"averageScore"`
	Records      int     `json:"records"`
}

type CapabilitySummary struct {
	TotalRecords     int               `json:"totalRecords"`
	AverageScore     float64           `json:"averageScore"`
	StrongCount      int               `json:"strongCount"`
	WeakCount        int               `json:"weakCount"`
	CategoryAverages []CategoryAverage `json:"categoryAverages"`
}

type CapabilityAnalysis struct {
	Capabilities []CapabilityProfile `json:"capabilities"`
	Summary      CapabilitySummary   `json:"summary"`
}

// ClassifyScores splits a score map into strong and weak capability names,
// both sorted, and returns the mean score.
func ClassifyScores(scores models.CapabilityScores) (strong, weak []string, mean float64) {
	strong, weak = []string{}, []string{}
	if len(scores) == 0 {
		return strong, weak, 0
	}
	var sum float64
	for name, score := range scores {
		sum += score
		if score >= StrongThreshold {
			strong = append(strong, name)
		} else {
			weak = append(weak, name)
		}
	}
	sort.Strings(strong)
	sort.Strings(weak)
	return strong, weak, sum / float64(len(scores))
}

func sortedScores(scores models.CapabilityScores) []CapabilityScore {
	out := make([]CapabilityScore, 0, len(scores))
	for name, score := range scores {
		out = append(out, CapabilityScore{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AnalyzeCapabilities classifies every stored score map and averages
// scores overall and per category.
func AnalyzeCapabilities(records []models.UserCapability) CapabilityAnalysis {
	result := CapabilityAnalysis{
		Capabilities: make([]CapabilityProfile, 0, len(records)),
		Summary:      CapabilitySummary{TotalRecords: len(records), CategoryAverages: []CategoryAverage{}},
	}

	type acc struct {
		sum     float64
		n       int
		records int
	}
	perCategory := map[string]*acc{}
	var order []string
	var totalSum float64
	var totalN int

	for _, rec := range records {
		scores := rec.CapabilityAnalysis.Data()
		strong, weak, mean := ClassifyScores(scores)
		result.Capabilities = append(result.Capabilities, CapabilityProfile{
			StandardizedCategory: rec.StandardizedCategory,
			UserQuery:            rec.UserQuery,
			Scores:               sortedScores(scores),
			Strong:               strong,
			Weak:                 weak,
			OverallScore:         round2(mean),
		})
		result.Summary.StrongCount += len(strong)
		result.Summary.WeakCount += len(weak)

		a, ok := perCategory[rec.StandardizedCategory]
		if !ok {
			a = &acc{}
			perCategory[rec.StandardizedCategory] = a
			order = append(order, rec.StandardizedCategory)
		}
		a.records++
		for _, s := range scores {
			a.sum += s
			a.n++
			totalSum += s
			totalN++
		}
	}

	if totalN > 0 {
		result.Summary.AverageScore = round2(totalSum / float64(totalN))
	}
	for _, cat := range order {
		a := perCategory[cat]
		avg := 0.0
		if a.n > 0 {
			avg = round2(a.sum / float64(a.n))
		}
		result.Summary.CategoryAverages = append(result.Summary.CategoryAverages, CategoryAverage{
			Category:     cat,
			AverageScore: avg,
			Records:      a.records,
		})
	}
	sort.SliceStable(result.Summary.CategoryAverages, func(i, j int) bool {
		return result.Summary.CategoryAverages[i].Category < result.Summary.CategoryAverages[j].Category
	})
	return result
}
