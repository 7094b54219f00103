// Package analysis reshapes grouped counts and stored score maps into the
// views served by the dashboard endpoints.
package analysis

import (
	"math"

	"reviewdash/reviewdash/sources/psql/dao"
)

// Share is one slice of a distribution chart.
type Share struct {
	Name       string `json:"name"`
	Value      int64  `json:"value"`
	Percentage int    `json:"percentage"`
}

// Percent returns round(value / total * 100), or 0 when total is 0.
func Percent(value, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}

// SumCounts adds up the counts of every group.
func SumCounts(groups []dao.GroupCount) int64 {
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	return total
}

// Distribution converts grouped counts to shares of total, keeping order.
func Distribution(groups []dao.GroupCount, total int64) []Share {
	shares := make([]Share, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, Share{
			Name:       g.Name,
			Value:      g.Count,
			Percentage: Percent(g.Count, total),
		})
	}
	return shares
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
