package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryInsight is a free-text description attached to a category.
type CategoryInsight struct {
	Category    string `json:"category" yaml:"standardized_category"`
	Description string `json:"description" yaml:"insight"`
}

// LoadCategoryInsights reads a YAML or JSON list of
// {standardized_category, insight} entries. JSON parses as YAML.
func LoadCategoryInsights(path string) ([]CategoryInsight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category insights: %w", err)
	}
	var insights []CategoryInsight
	if err := yaml.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("parse category insights %s: %w", path, err)
	}
	out := make([]CategoryInsight, 0, len(insights))
	for _, in := range insights {
		if in.Category != "" {
			out = append(out, in)
		}
	}
	return out, nil
}

// InsightIndex maps category name to description.
func InsightIndex(insights []CategoryInsight) map[string]string {
	idx := make(map[string]string, len(insights))
	for _, in := range insights {
		idx[in.Category] = in.Description
	}
	return idx
}
