// reviewdash/controllers/llm.go
package controllers

import (
	"context"
	"errors"

	"reviewdash/reviewdash/services/llm"
	"reviewdash/reviewdash/sources/psql/dao"

	"gorm.io/gorm"
)

var ErrLLMDisabled = errors.New("model analysis is not configured")

// LLMController serves the model backed analyses. A nil client disables them.
type LLMController struct {
	client  llm.Completer
	reviews *dao.ReviewDAO
}

func NewLLMController(client llm.Completer, db *gorm.DB) *LLMController {
	return &LLMController{client: client, reviews: dao.NewReviewDAO(db)}
}

func (c *LLMController) Enabled() bool {
	return c != nil && c.client != nil
}

// AnalyzeReviews sends every stored review to the model.
func (c *LLMController) AnalyzeReviews(ctx context.Context) (*llm.ReviewAnalysis, error) {
	if !c.Enabled() {
		return nil, ErrLLMDisabled
	}
	reviews, err := c.reviews.GetAllReviews(ctx)
	if err != nil {
		return nil, err
	}
	return llm.AnalyzeCodeReviews(ctx, c.client, reviews)
}

func (c *LLMController) TrainingRecommendations(ctx context.Context) (*llm.TrainingRecommendations, error) {
	if !c.Enabled() {
		return nil, ErrLLMDisabled
	}
	reviews, err := c.reviews.GetRecentReviews(ctx, llm.RecentReviewLimit)
	if err != nil {
		return nil, err
	}
	return llm.GenerateTrainingRecommendations(ctx, c.client, reviews)
}
