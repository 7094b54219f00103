package main

import (
	"bytes"
	"testing"
	"time"

	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/services/analysis"
	"reviewdash/reviewdash/services/importer"
	"reviewdash/reviewdash/sources/psql/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCategoryTable(t *testing.T) {
	var buf bytes.Buffer
	shares := []controllers.CategoryShare{
		{Share: analysis.Share{Name: "Bug Fix", Value: 3, Percentage: 75}, Description: "Most common"},
		{Share: analysis.Share{Name: "Feature", Value: 1, Percentage: 25}},
	}
	require.NoError(t, printCategoryTable(&buf, shares))
	out := buf.String()
	assert.Contains(t, out, "Bug Fix")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Most common")
}

func TestPrintMetricsAndHistoryTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMetricsTable(&buf, &controllers.MetricsSummary{TotalReviews: 42, TotalTrainingCourses: 18}))
	assert.Contains(t, buf.String(), "42")

	buf.Reset()
	id := uuid.New()
	require.NoError(t, printHistoryTable(&buf, []models.ImportRun{{
		ID: id, Kind: "intents", Inserted: 9, Failed: 1, SourcePath: "intent_broader_categories.json", FinishedAt: time.Now(),
	}}))
	assert.Contains(t, buf.String(), id.String()[:8])
	assert.Contains(t, buf.String(), "intent_broader_categories.json")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestConfiguredPath(t *testing.T) {
	cfg.IntentsPath = "data/intent_broader_categories.json"
	t.Cleanup(func() { cfg.IntentsPath = "" })
	assert.Equal(t, "data/intent_broader_categories.json", configuredPath(importer.KindIntents))
	assert.Empty(t, configuredPath(importer.Kind("users")))
}
