package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 75, Percent(3, 4))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 100, Percent(7, 7))
}

func TestDistributionCategoryScenario(t *testing.T) {
	groups := []dao.GroupCount{{Name: "A", Count: 3}, {Name: "B", Count: 1}}
	shares := Distribution(groups, SumCounts(groups))
	assert.Equal(t, []Share{
		{Name: "A", Value: 3, Percentage: 75},
		{Name: "B", Value: 1, Percentage: 25},
	}, shares)
}

func TestDistributionPercentagesSumNear100(t *testing.T) {
	cases := [][]int64{
		{1, 1, 1},
		{5, 3, 2, 1},
		{7, 7, 7, 7, 7, 7},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{100},
	}
	for _, counts := range cases {
		var groups []dao.GroupCount
		for i, c := range counts {
			groups = append(groups, dao.GroupCount{Name: string(rune('A' + i)), Count: c})
		}
		sum := 0
		for _, s := range Distribution(groups, SumCounts(groups)) {
			sum += s.Percentage
		}
		// each share rounds by at most half a point
		tolerance := (len(groups) + 1) / 2
		assert.InDelta(t, 100, sum, float64(tolerance), "counts %v", counts)
	}
}

func TestDistributionEmpty(t *testing.T) {
	assert.Empty(t, Distribution(nil, 0))
}

func capability(cat, query string, scores models.CapabilityScores) models.UserCapability {
	return models.UserCapability{
		StandardizedCategory: cat,
		UserQuery:            query,
		CapabilityAnalysis:   datatypes.NewJSONType(scores),
	}
}

func TestClassifyScoresScenario(t *testing.T) {
	strong, weak, mean := ClassifyScores(models.CapabilityScores{"db": 9, "caching": 4})
	assert.Equal(t, []string{"db"}, strong)
	assert.Equal(t, []string{"caching"}, weak)
	assert.Equal(t, 6.5, mean)
}

func TestClassifyScoresThreshold(t *testing.T) {
	strong, weak, _ := ClassifyScores(models.CapabilityScores{"edge": 8, "below": 7.99})
	assert.Equal(t, []string{"edge"}, strong)
	assert.Equal(t, []string{"below"}, weak)
}

func TestAnalyzeCapabilities(t *testing.T) {
	res := AnalyzeCapabilities([]models.UserCapability{
		capability("Database", "q1", models.CapabilityScores{"db": 9, "caching": 4}),
		capability("Database", "q2", models.CapabilityScores{"db": 8}),
		capability("API", "q3", models.CapabilityScores{"rest": 5, "auth": 6}),
	})

	require.Len(t, res.Capabilities, 3)
	first := res.Capabilities[0]
	assert.Equal(t, 6.5, first.OverallScore)
	assert.Equal(t, []CapabilityScore{{Name: "db", Score: 9}, {Name: "caching", Score: 4}}, first.Scores)

	assert.Equal(t, 3, res.Summary.TotalRecords)
	assert.Equal(t, 2, res.Summary.StrongCount)
	assert.Equal(t, 3, res.Summary.WeakCount)
	assert.Equal(t, 6.4, res.Summary.AverageScore)
	assert.Equal(t, []CategoryAverage{
		{Category: "API", AverageScore: 5.5, Records: 1},
		{Category: "Database", AverageScore: 7, Records: 2},
	}, res.Summary.CategoryAverages)
}

func TestAnalyzeCapabilitiesEmpty(t *testing.T) {
	res := AnalyzeCapabilities(nil)
	assert.NotNil(t, res.Capabilities)
	assert.NotNil(t, res.Summary.CategoryAverages)
	assert.Zero(t, res.Summary.AverageScore)
}

func TestAnalyzeTraining(t *testing.T) {
	dbPlan, err := models.NewTrainingPlan(map[string]float64{"Indexing": 10, "SQL": 9, "ORM": 6})
	require.NoError(t, err)
	apiPlan, err := models.NewTrainingPlan(map[string]float64{"REST": 9})
	require.NoError(t, err)

	res := AnalyzeTraining([]models.TrainingRecommendation{
		{StandardizedCategory: "API", TrainingQuery: "rest?", TrainingPlan: datatypes.NewJSONType(apiPlan)},
		{StandardizedCategory: "Database", TrainingQuery: "db?", TrainingPlan: datatypes.NewJSONType(dbPlan)},
	})

	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, 25.0, res.Recommendations[1].TrainingPlan.TimeEstimate)
	assert.Equal(t, 4, res.Summary.TotalRecommendations)
	assert.Equal(t, 34.0, res.Summary.TotalTimeEstimate)
	assert.Equal(t, PriorityBreakdown{Critical: 1, High: 2, Normal: 1}, res.Summary.ByPriority)
	assert.Equal(t, []TrainingCategoryBucket{
		{Category: "Database", Recommendations: 3, TimeEstimate: 25},
		{Category: "API", Recommendations: 1, TimeEstimate: 9},
	}, res.Summary.ByCategory)
}

func TestTopKeywords(t *testing.T) {
	intents := []models.Intent{
		{StandardizedCategory: "A", Keywords: datatypes.JSONSlice[string]{"SQL", "index", " "}},
		{StandardizedCategory: "B", Keywords: datatypes.JSONSlice[string]{"sql", "docker"}},
		{StandardizedCategory: "C", Keywords: datatypes.JSONSlice[string]{"docker", "SQL", "auth"}},
	}
	assert.Equal(t, []dao.GroupCount{
		{Name: "SQL", Count: 3},
		{Name: "docker", Count: 2},
		{Name: "auth", Count: 1},
		{Name: "index", Count: 1},
	}, TopKeywords(intents, 0))
	assert.Len(t, TopKeywords(intents, 2), 2)
	assert.Empty(t, TopKeywords(nil, DefaultTopKeywords))
}

func TestCoOccurrence(t *testing.T) {
	rows := []models.ReviewWorkArea{
		{CodeReviewID: 1, WorkArea: "Backend"},
		{CodeReviewID: 1, WorkArea: "Database"},
		{CodeReviewID: 2, WorkArea: "Backend"},
		{CodeReviewID: 2, WorkArea: "Frontend"},
		{CodeReviewID: 3, WorkArea: "Security"},
	}
	assert.Equal(t, []WorkAreaTrend{
		{Name: "Backend", Connections: 2, ConnectedAreas: []string{"Database", "Frontend"}},
		{Name: "Database", Connections: 1, ConnectedAreas: []string{"Backend"}},
		{Name: "Frontend", Connections: 1, ConnectedAreas: []string{"Backend"}},
		{Name: "Security", Connections: 0, ConnectedAreas: []string{}},
	}, CoOccurrence(rows))
}

func TestLoadCategoryInsights(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "category_insights.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- standardized_category: API Integration
  insight: Users need help with API integration tasks.
- standardized_category: ""
  insight: dropped
- standardized_category: Testing & QA
  insight: Users focus on testing practices.
`), 0o644))
	jsonPath := filepath.Join(dir, "category_insights.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"standardized_category":"Error Handling","insight":"Debugging help."}]`), 0o644))

	fromYAML, err := LoadCategoryInsights(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []CategoryInsight{
		{Category: "API Integration", Description: "Users need help with API integration tasks."},
		{Category: "Testing & QA", Description: "Users focus on testing practices."},
	}, fromYAML)
	assert.Equal(t, "Users focus on testing practices.", InsightIndex(fromYAML)["Testing & QA"])

	fromJSON, err := LoadCategoryInsights(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []CategoryInsight{{Category: "Error Handling", Description: "Debugging help."}}, fromJSON)

	_, err = LoadCategoryInsights(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestQueryInsights(t *testing.T) {
	records := []models.UserCapability{
		{StandardizedCategory: "Bug Fix", UserQuery: "why does it crash"},
		{StandardizedCategory: "Bug Fix", UserQuery: "second question"},
		{StandardizedCategory: "Feature", UserQuery: ""},
		{StandardizedCategory: "Feature", UserQuery: "add a button"},
		{StandardizedCategory: "Other", UserQuery: "not listed"},
	}

	got := QueryInsights(records, []string{"Feature", "Bug Fix", "Missing"})
	assert.Equal(t, []QueryInsight{
		{Title: "Feature", Description: "add a button"},
		{Title: "Bug Fix", Description: "why does it crash"},
	}, got)

	assert.Empty(t, QueryInsights(nil, nil))
}

func TestBundledCategoryInsights(t *testing.T) {
	insights, err := LoadCategoryInsights(filepath.Join("..", "..", "..", "attached_assets", "category_insights.yaml"))
	require.NoError(t, err)
	require.Len(t, insights, 10)
	assert.Equal(t, "API Integration", insights[0].Category)
	assert.Equal(t, "Testing & QA", insights[9].Category)

	idx := InsightIndex(insights)
	assert.Contains(t, idx["Code Development"], "Angular and C# development")
	for _, in := range insights {
		assert.NotEmpty(t, in.Description, in.Category)
	}
}
