package analysis

import (
	"sort"

	"reviewdash/reviewdash/sources/psql/models"
)

// WorkAreaTrend describes how a work area co-occurs with others on reviews.
type WorkAreaTrend struct {
	Name           string   `json:"name"`
	Connections    int      `json:"connections"`
	ConnectedAreas []string `json:"connectedAreas"`
}

// CoOccurrence derives, for every work area, the distinct other areas that
// appear on the same review. Areas without connections are still listed.
func CoOccurrence(rows []models.ReviewWorkArea) []WorkAreaTrend {
	byReview := map[uint][]string{}
	for _, r := range rows {
		byReview[r.CodeReviewID] = append(byReview[r.CodeReviewID], r.WorkArea)
	}

	links := map[string]map[string]struct{}{}
	for _, areas := range byReview {
		for _, a := range areas {
			if _, ok := links[a]; !ok {
				links[a] = map[string]struct{}{}
			}
			for _, b := range areas {
				if a != b {
					links[a][b] = struct{}{}
				}
			}
		}
	}

	trends := make([]WorkAreaTrend, 0, len(links))
	for name, set := range links {
		connected := make([]string, 0, len(set))
		for other := range set {
			connected = append(connected, other)
		}
		sort.Strings(connected)
		trends = append(trends, WorkAreaTrend{Name: name, Connections: len(connected), ConnectedAreas: connected})
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Connections != trends[j].Connections {
			return trends[i].Connections > trends[j].Connections
		}
		return trends[i].Name < trends[j].Name
	})
	return trends
}
