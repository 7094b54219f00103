package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reviewdash/reviewdash/sources/psql/models"
	"reviewdash/reviewdash/utils/jsonutils"
)

// RecentReviewLimit bounds the reviews sent for training recommendations.
const RecentReviewLimit = 10

var ErrMalformedResponse = errors.New("malformed model response")

type ReviewAnalysis struct {
	CategoryAnalysis        []json.RawMessage `json:"categoryAnalysis"`
	IntentAnalysis          []json.RawMessage `json:"intentAnalysis"`
	WorkAreaAnalysis        []json.RawMessage `json:"workAreaAnalysis"`
	TrainingRecommendations []json.RawMessage `json:"trainingRecommendations"`
}

type Recommendation struct {
	Course      string  `json:"course"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impactScore"`
}

type TrainingRecommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type reviewView struct {
	Filename           string     `json:"filename"`
	Category           string     `json:"standardized_category"`
	Intent             string     `json:"standardized_intent,omitempty"`
	WorkAreas          []string   `json:"related_work_areas"`
	Capabilities       []string   `json:"capability_analysis,omitempty"`
	SuggestedTraining  []string   `json:"suggested_training,omitempty"`
	ProcessedTimestamp *time.Time `json:"processed_timestamp,omitempty"`
}

func reviewsPayload(reviews []models.CodeReview) (string, error) {
	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, reviewView{
			Filename:           r.Filename,
			Category:           r.StandardizedCategory,
			Intent:             r.StandardizedIntent,
			WorkAreas:          r.RelatedWorkAreas(),
			Capabilities:       r.CapabilityAnalysis,
			SuggestedTraining:  r.SuggestedTraining,
			ProcessedTimestamp: r.ProcessedTimestamp,
		})
	}
	data, err := json.Marshal(views)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

const analysisPrompt = `Analyze the following code review data and provide insights in JSON format:
%s

Please provide:
1. Category distribution and trends
2. Intent patterns and frequencies
3. Work area analysis with skill gaps
4. Training recommendations based on identified patterns

Format the response as JSON with these keys:
{
  "categoryAnalysis": [...],
  "intentAnalysis": [...],
  "workAreaAnalysis": [...],
  "trainingRecommendations": [...]
}`

const recommendationPrompt = `Based on these recent code reviews:
%s

Generate personalized training recommendations. Consider:
1. Current skill gaps
2. Areas needing improvement
3. Priority of different training areas

Format as JSON with:
{
  "recommendations": [
    {
      "course": string,
      "priority": "High" | "Medium" | "Low",
      "category": string,
      "description": string,
      "impactScore": number
    }
  ]
}`

// AnalyzeCodeReviews asks the model for a free-form breakdown of reviews.
// Missing sections come back as empty arrays.
func AnalyzeCodeReviews(ctx context.Context, c Completer, reviews []models.CodeReview) (*ReviewAnalysis, error) {
	payload, err := reviewsPayload(reviews)
	if err != nil {
		return nil, err
	}
	var out ReviewAnalysis
	err = complete(ctx, c, "You are a code review analysis expert.", fmt.Sprintf(analysisPrompt, payload), &out)
	if err != nil {
		return nil, err
	}
	out.CategoryAnalysis = nonNil(out.CategoryAnalysis)
	out.IntentAnalysis = nonNil(out.IntentAnalysis)
	out.WorkAreaAnalysis = nonNil(out.WorkAreaAnalysis)
	out.TrainingRecommendations = nonNil(out.TrainingRecommendations)
	return &out, nil
}

// GenerateTrainingRecommendations asks the model for courses based on the
// given reviews, normally the most recent ones.
func GenerateTrainingRecommendations(ctx context.Context, c Completer, reviews []models.CodeReview) (*TrainingRecommendations, error) {
	payload, err := reviewsPayload(reviews)
	if err != nil {
		return nil, err
	}
	var out TrainingRecommendations
	err = complete(ctx, c, "You are a technical training advisor.", fmt.Sprintf(recommendationPrompt, payload), &out)
	if err != nil {
		return nil, err
	}
	if out.Recommendations == nil {
		out.Recommendations = []Recommendation{}
	}
	return &out, nil
}

func complete(ctx context.Context, c Completer, system, prompt string, out any) error {
	content, err := c.Run(ctx, ChatRequest{
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: JSONObject,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonutils.ExtractJSON(content)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}
