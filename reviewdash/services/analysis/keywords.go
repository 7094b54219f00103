package analysis

import (
	"sort"
	"strings"

	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"
)

// DefaultTopKeywords is how many keywords the intent view ranks.
const DefaultTopKeywords = 10

// TopKeywords flattens keywords across intents and ranks them by occurrence.
// Keywords are compared case-insensitively; the first spelling seen wins.
func TopKeywords(intents []models.Intent, limit int) []dao.GroupCount {
	counts := map[string]int64{}
	display := map[string]string{}
	for _, in := range intents {
		for _, kw := range in.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			key := strings.ToLower(kw)
			if _, ok := display[key]; !ok {
				display[key] = kw
			}
			counts[key]++
		}
	}
	out := make([]dao.GroupCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, dao.GroupCount{Name: display[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
