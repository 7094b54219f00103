// reviewdash/controllers/analysis.go
package controllers

import (
	"context"
	"errors"
	"io/fs"

	"reviewdash/reviewdash/services/analysis"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"
	"reviewdash/reviewdash/utils/logging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CoursesPerCategory approximates the training catalogue size.
const CoursesPerCategory = 6

type MetricsSummary struct {
	TotalReviews         int64 `json:"totalReviews"`
	UniqueCategories     int64 `json:"uniqueCategories"`
	UniqueWorkAreas      int64 `json:"uniqueWorkAreas"`
	TotalTrainingCourses int64 `json:"totalTrainingCourses"`
}

type CategoryShare struct {
	analysis.Share
	Description string `json:"description"`
}

type CategoryAnalysis struct {
	Distribution []CategoryShare            `json:"distribution"`
	Insights     []analysis.CategoryInsight `json:"insights"`
}

type WorkAreaShare struct {
	analysis.Share
	RelatedAreas []string `json:"relatedAreas"`
}

type WorkAreaInsight struct {
	WorkArea          string   `json:"workArea"`
	BroaderCategories []string `json:"broaderCategories"`
}

type WorkAreaAnalysis struct {
	Distribution []WorkAreaShare          `json:"distribution"`
	Insights     []WorkAreaInsight        `json:"insights"`
	Trends       []analysis.WorkAreaTrend `json:"trends"`
}

type IntentInsight struct {
	Intent            string   `json:"intent"`
	BroaderCategories []string `json:"broaderCategories"`
	Keywords          []string `json:"keywords"`
	Description       string   `json:"description"`
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

type IntentAnalysis struct {
	Distribution []analysis.Share `json:"distribution"`
	Insights     []IntentInsight  `json:"insights"`
	TopKeywords  []KeywordCount   `json:"topKeywords"`
}

// QueryShare repeats the name under category for the radar chart axis.
type QueryShare struct {
	analysis.Share
	Category string `json:"category"`
}

type QueryCategory struct {
	Name        string `json:"name"`
	Count       int64  `json:"count"`
	Description string `json:"description"`
}

type QueryAnalysis struct {
	TotalQueries int64                   `json:"totalQueries"`
	Distribution []QueryShare            `json:"distribution"`
	Categories   []QueryCategory         `json:"categories"`
	Insights     []analysis.QueryInsight `json:"insights"`
}

type DuplicateFilename struct {
	Filename string `json:"filename"`
	Count    int64  `json:"count"`
}

// AnalysisController serves the read-only dashboard aggregations.
type AnalysisController struct {
	reviews      *dao.ReviewDAO
	intents      *dao.IntentDAO
	workAreas    *dao.WorkAreaDAO
	capabilities *dao.CapabilityDAO
	training     *dao.TrainingDAO
	insightsPath string
}

func NewAnalysisController(db *gorm.DB, insightsPath string) *AnalysisController {
	return &AnalysisController{
		reviews:      dao.NewReviewDAO(db),
		intents:      dao.NewIntentDAO(db),
		workAreas:    dao.NewWorkAreaDAO(db),
		capabilities: dao.NewCapabilityDAO(db),
		training:     dao.NewTrainingDAO(db),
		insightsPath: insightsPath,
	}
}

func (c *AnalysisController) Metrics(ctx context.Context) (*MetricsSummary, error) {
	total, err := c.reviews.CountReviews(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := c.reviews.CountDistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	areas, err := c.reviews.CountDistinctWorkAreas(ctx)
	if err != nil {
		return nil, err
	}
	return &MetricsSummary{
		TotalReviews:         total,
		UniqueCategories:     categories,
		UniqueWorkAreas:      areas,
		TotalTrainingCourses: categories * CoursesPerCategory,
	}, nil
}

// loadInsights reads the insights file on every call. A missing file means
// no descriptions.
func (c *AnalysisController) loadInsights() ([]analysis.CategoryInsight, error) {
	insights, err := analysis.LoadCategoryInsights(c.insightsPath)
	if errors.Is(err, fs.ErrNotExist) {
		logging.AppLogger.Warn("category insights file not found", zap.String("path", c.insightsPath))
		return []analysis.CategoryInsight{}, nil
	}
	return insights, err
}

func (c *AnalysisController) Categories(ctx context.Context) (*CategoryAnalysis, error) {
	groups, err := c.reviews.GroupByCategory(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := c.loadInsights()
	if err != nil {
		return nil, err
	}
	descriptions := analysis.InsightIndex(insights)

	shares := analysis.Distribution(groups, analysis.SumCounts(groups))
	out := &CategoryAnalysis{
		Distribution: make([]CategoryShare, 0, len(shares)),
		Insights:     insights,
	}
	for _, s := range shares {
		out.Distribution = append(out.Distribution, CategoryShare{Share: s, Description: descriptions[s.Name]})
	}
	return out, nil
}

// WorkAreas reports each area's share of all reviews. A review may count
// towards several areas so percentages need not sum to 100.
func (c *AnalysisController) WorkAreas(ctx context.Context) (*WorkAreaAnalysis, error) {
	groups, err := c.reviews.GroupByWorkArea(ctx)
	if err != nil {
		return nil, err
	}
	total, err := c.reviews.CountReviews(ctx)
	if err != nil {
		return nil, err
	}
	lookups, err := c.workAreas.GetAllWorkAreas(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := c.reviews.GetAllWorkAreaRows(ctx)
	if err != nil {
		return nil, err
	}

	related := make(map[string][]string, len(lookups))
	insights := make([]WorkAreaInsight, 0, len(lookups))
	for _, wa := range lookups {
		broader := models.SplitList(wa.BroaderCategories)
		related[wa.StandardizedWorkArea] = broader
		insights = append(insights, WorkAreaInsight{WorkArea: wa.StandardizedWorkArea, BroaderCategories: broader})
	}

	shares := analysis.Distribution(groups, total)
	out := &WorkAreaAnalysis{
		Distribution: make([]WorkAreaShare, 0, len(shares)),
		Insights:     insights,
		Trends:       analysis.CoOccurrence(rows),
	}
	for _, s := range shares {
		areas := related[s.Name]
		if areas == nil {
			areas = []string{}
		}
		out.Distribution = append(out.Distribution, WorkAreaShare{Share: s, RelatedAreas: areas})
	}
	return out, nil
}

func (c *AnalysisController) Intents(ctx context.Context) (*IntentAnalysis, error) {
	groups, err := c.reviews.GroupByIntent(ctx)
	if err != nil {
		return nil, err
	}
	intents, err := c.intents.GetAllIntents(ctx)
	if err != nil {
		return nil, err
	}

	out := &IntentAnalysis{
		Distribution: analysis.Distribution(groups, analysis.SumCounts(groups)),
		Insights:     make([]IntentInsight, 0, len(intents)),
		TopKeywords:  []KeywordCount{},
	}
	for _, in := range intents {
		keywords := []string(in.Keywords)
		if keywords == nil {
			keywords = []string{}
		}
		out.Insights = append(out.Insights, IntentInsight{
			Intent:            in.StandardizedCategory,
			BroaderCategories: models.SplitList(in.BroaderCategories),
			Keywords:          keywords,
			Description:       in.Description,
		})
	}
	for _, kw := range analysis.TopKeywords(intents, analysis.DefaultTopKeywords) {
		out.TopKeywords = append(out.TopKeywords, KeywordCount{Keyword: kw.Name, Count: kw.Count})
	}
	return out, nil
}

func (c *AnalysisController) Capabilities(ctx context.Context) (*analysis.CapabilityAnalysis, error) {
	records, err := c.capabilities.GetAllCapabilities(ctx)
	if err != nil {
		return nil, err
	}
	result := analysis.AnalyzeCapabilities(records)
	return &result, nil
}

func (c *AnalysisController) Training(ctx context.Context) (*analysis.TrainingAnalysis, error) {
	records, err := c.training.GetAllRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	result := analysis.AnalyzeTraining(records)
	return &result, nil
}

// Queries groups capability records (one per user query) by category.
func (c *AnalysisController) Queries(ctx context.Context) (*QueryAnalysis, error) {
	groups, err := c.capabilities.GroupByCategory(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.capabilities.GetAllCapabilities(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := c.loadInsights()
	if err != nil {
		return nil, err
	}
	descriptions := analysis.InsightIndex(insights)

	total := analysis.SumCounts(groups)
	shares := analysis.Distribution(groups, total)
	out := &QueryAnalysis{
		TotalQueries: total,
		Distribution: make([]QueryShare, 0, len(shares)),
		Categories:   make([]QueryCategory, 0, len(shares)),
	}
	names := make([]string, 0, len(shares))
	for _, s := range shares {
		out.Distribution = append(out.Distribution, QueryShare{Share: s, Category: s.Name})
		out.Categories = append(out.Categories, QueryCategory{Name: s.Name, Count: s.Value, Description: descriptions[s.Name]})
		names = append(names, s.Name)
	}
	out.Insights = analysis.QueryInsights(records, names)
	return out, nil
}

func (c *AnalysisController) Duplicates(ctx context.Context) ([]DuplicateFilename, error) {
	groups, err := c.reviews.FindDuplicateFilenames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DuplicateFilename, 0, len(groups))
	for _, g := range groups {
		out = append(out, DuplicateFilename{Filename: g.Name, Count: g.Count})
	}
	return out, nil
}
