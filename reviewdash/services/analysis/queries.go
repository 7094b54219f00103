package analysis

import "reviewdash/reviewdash/sources/psql/models"

type QueryInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QueryInsights picks the first recorded user query of each category,
// following the order of categories. Categories without a query are skipped.
func QueryInsights(records []models.UserCapability, categories []string) []QueryInsight {
	first := make(map[string]string, len(categories))
	for _, rec := range records {
		if rec.UserQuery == "" {
			continue
		}
		if _, ok := first[rec.StandardizedCategory]; !ok {
			first[rec.StandardizedCategory] = rec.UserQuery
		}
	}
	out := make([]QueryInsight, 0, len(categories))
	for _, c := range categories {
		if q, ok := first[c]; ok {
			out = append(out, QueryInsight{Title: c, Description: q})
		}
	}
	return out
}
