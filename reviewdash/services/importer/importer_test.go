package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reviewdash/reviewdash/services/events"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"
	"reviewdash/reviewdash/sources/psql/psqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeJSON(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, name, string(data))
}

func intentNames(t *testing.T, im *Importer) []string {
	t.Helper()
	intents, err := dao.NewIntentDAO(im.db).GetAllIntents(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(intents))
	for _, it := range intents {
		names = append(names, it.StandardizedCategory)
	}
	return names
}

type fakeArchiver struct {
	keys []string
	err  error
}

func (f *fakeArchiver) ArchiveImport(_ context.Context, kind, runID, sourcePath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := kind + "/" + runID + "/" + filepath.Base(sourcePath)
	f.keys = append(f.keys, key)
	return key, nil
}

func TestImportIntentsSkipsInvalidRecords(t *testing.T) {
	records := make([]map[string]any, 0, 10)
	for i := 1; i <= 10; i++ {
		rec := map[string]any{
			"standardized_category": fmt.Sprintf("Intent %02d", i),
			"broader_categories":    "Quality, Maintenance",
			"keywords":              []string{"refactor", "Cleanup"},
		}
		if i == 4 {
			delete(rec, "broader_categories")
		}
		records = append(records, rec)
	}
	path := writeJSON(t, "intent_broader_categories.json", records)
	im := NewImporter(psqltest.NewTestDB(t))

	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, KindIntents, res.Kind)
	assert.Equal(t, 9, res.Count)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "record 4")
	assert.Contains(t, res.Errors[0], "broader_categories")
	assert.Len(t, intentNames(t, im), 9)
	assert.NotContains(t, intentNames(t, im), "Intent 04")

	intents, err := dao.NewIntentDAO(im.db).GetAllIntents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Quality, Maintenance", intents[0].BroaderCategories)
	assert.Equal(t, []string{"refactor", "Cleanup"}, []string(intents[0].Keywords))
}

func TestSnapshotImportReplacesPriorRows(t *testing.T) {
	im := NewImporter(psqltest.NewTestDB(t))
	ctx := context.Background()

	first := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
		{"standardized_category": "Feature", "broader_categories": "Product"},
		{"standardized_category": "Docs", "broader_categories": "Knowledge"},
	})
	_, err := im.Import(ctx, first)
	require.NoError(t, err)

	second := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Refactor", "broader_categories": []string{"Quality", "Design"}},
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
	})
	res, err := im.Import(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.ElementsMatch(t, []string{"Refactor", "Bug Fix"}, intentNames(t, im))

	// same file again gives the same table
	_, err = im.Import(ctx, second)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Refactor", "Bug Fix"}, intentNames(t, im))
}

func TestSnapshotImportRejectsDuplicateNames(t *testing.T) {
	path := writeJSON(t, "work_area_broader_categories.json", []map[string]any{
		{"standardized_work_area": "Backend", "broader_categories": "Server"},
		{"standardized_work_area": "Frontend", "broader_work_areas": "Client, UI"},
		{"standardized_work_area": "Backend", "broader_categories": "Other"},
	})
	im := NewImporter(psqltest.NewTestDB(t))

	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "record 3")
	assert.Contains(t, res.Errors[0], "duplicate")

	areas, err := dao.NewWorkAreaDAO(im.db).GetAllWorkAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 2)
	byName := map[string]string{}
	for _, a := range areas {
		byName[a.StandardizedWorkArea] = a.BroaderCategories
	}
	assert.Equal(t, "Server", byName["Backend"])
	assert.Equal(t, "Client, UI", byName["Frontend"])
}

func TestImportCapabilitiesValidatesScores(t *testing.T) {
	path := writeJSON(t, "user_capabilities_analysis.json", []map[string]any{
		{"standardized_category": "Bug Fix", "user_query": "fix login", "capability_analysis": map[string]any{"debugging": 9, "testing": "6"}},
		{"standardized_category": "Bug Fix", "user_query": "fix logout", "capability_analysis": map[string]any{"debugging": 11}},
		{"standardized_category": "Feature", "capability_analysis": map[string]any{"design": 7}},
	})
	im := NewImporter(psqltest.NewTestDB(t))

	res, err := im.ImportKind(context.Background(), KindCapabilities, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "record 2")
	assert.Contains(t, res.Errors[1], "user_query")

	caps, err := dao.NewCapabilityDAO(im.db).GetAllCapabilities(context.Background())
	require.NoError(t, err)
	require.Len(t, caps, 1)
	assert.Equal(t, models.CapabilityScores{"debugging": 9, "testing": 6}, caps[0].CapabilityAnalysis.Data())
}

func TestImportTrainingDerivesPlan(t *testing.T) {
	path := writeJSON(t, "training_recommendation_analysis.json", []map[string]any{
		{
			"standardized_category": "Performance",
			"training_analysis": map[string]any{
				"training_query": "profiling",
				"training_plan":  map[string]any{"Caching": 4, "Databases": 9},
			},
		},
		{"standardized_category": "Empty", "training_analysis": map[string]any{"training_plan": map[string]any{}}},
	})
	im := NewImporter(psqltest.NewTestDB(t))

	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, KindTraining, res.Kind)
	assert.Equal(t, 1, res.Count)
	assert.Len(t, res.Errors, 1)

	recs, err := dao.NewTrainingDAO(im.db).GetAllRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	plan := recs[0].TrainingPlan.Data()
	assert.Equal(t, 13.0, plan.TimeEstimate)
	assert.Equal(t, []string{"Databases (Priority: 9)", "Caching (Priority: 4)"}, plan.Recommendations)
	assert.Equal(t, "profiling", recs[0].TrainingQuery)
}

const reviewsCSV = "\ufefffilename,raw_category,standardized_category,raw_intent,standardized_intent,related_work_areas,provider,processed_timestamp,capability_analysis,suggested_training\n" +
	"a.py,bugfix,Bug Fix,fix it,Fix,\"Backend, Database\",openai,2024-05-01 10:00:00,\"debugging, sql\",SQL tuning\n" +
	"b.py,feat,Feature,add,Add,Frontend,openai,2024-05-01T11:00:00Z,,\n" +
	"c.py,,,,,,openai,,,\n"

func TestImportReviewsAppends(t *testing.T) {
	path := writeFile(t, "consolidated_with_llm_openai.csv", reviewsCSV)
	im := NewImporter(psqltest.NewTestDB(t))
	ctx := context.Background()

	res, err := im.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, KindReviews, res.Kind)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "record 3")

	reviews, err := dao.NewReviewDAO(im.db).GetAllReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "a.py", reviews[0].Filename)
	assert.Equal(t, []string{"Backend", "Database"}, reviews[0].RelatedWorkAreas())
	assert.Equal(t, []string{"debugging", "sql"}, []string(reviews[0].CapabilityAnalysis))
	require.NotNil(t, reviews[0].ProcessedTimestamp)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), reviews[0].ProcessedTimestamp.UTC())

	// reviews are append-only, a second run duplicates rows
	_, err = im.Import(ctx, path)
	require.NoError(t, err)
	n, err := dao.NewReviewDAO(im.db).CountReviews(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	dups, err := dao.NewReviewDAO(im.db).FindDuplicateFilenames(ctx)
	require.NoError(t, err)
	assert.Len(t, dups, 2)
}

func TestImportReviewsRowErrors(t *testing.T) {
	csv := "filename,standardized_category,processed_timestamp\n" +
		"a.py,Bug Fix,\n" +
		"b.py,Feature\n" +
		"c.py,Feature,yesterday\n"
	path := writeFile(t, "reviews.csv", csv)
	im := NewImporter(psqltest.NewTestDB(t))

	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "record 2")
	assert.Contains(t, res.Errors[1], "processed_timestamp")
}

func TestImportFileLevelFailures(t *testing.T) {
	im := NewImporter(psqltest.NewTestDB(t))
	ctx := context.Background()

	_, err := im.Import(ctx, filepath.Join(t.TempDir(), "intent_broader_categories.json"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = im.Import(ctx, writeFile(t, "intent_broader_categories.json", `{"not": "a list"`))
	assert.ErrorIs(t, err, ErrParse)

	_, err = im.Import(ctx, writeFile(t, "reviews.csv", "category,intent\nx,y\n"))
	assert.ErrorIs(t, err, ErrParse)

	_, err = im.Import(ctx, writeFile(t, "notes.txt", "hello"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestFailedSnapshotImportKeepsPriorRows(t *testing.T) {
	im := NewImporter(psqltest.NewTestDB(t))
	ctx := context.Background()
	good := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
	})
	_, err := im.Import(ctx, good)
	require.NoError(t, err)

	_, err = im.Import(ctx, writeFile(t, "intent_broader_categories.json", "[{"))
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, []string{"Bug Fix"}, intentNames(t, im))
}

func TestNonArraySnapshotFileKeepsPriorRows(t *testing.T) {
	im := NewImporter(psqltest.NewTestDB(t))
	ctx := context.Background()
	good := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
	})
	_, err := im.Import(ctx, good)
	require.NoError(t, err)

	for _, content := range []string{"null", "  null\n", `{"standardized_category": "Bug Fix"}`, ""} {
		_, err = im.Import(ctx, writeFile(t, "intent_broader_categories.json", content))
		require.ErrorIs(t, err, ErrParse, "content %q", content)
		assert.Equal(t, []string{"Bug Fix"}, intentNames(t, im))
	}

	res, err := im.Import(ctx, writeFile(t, "intent_broader_categories.json", "[]"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, intentNames(t, im))
}

func TestImportRecordsRunArchivesAndPublishes(t *testing.T) {
	db := psqltest.NewTestDB(t)
	archiver := &fakeArchiver{}
	hub := events.NewHub()
	sub, cancel := hub.Subscribe()
	defer cancel()
	im := NewImporter(db, WithArchiver(archiver), WithPublisher(hub))

	path := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
		{"standardized_category": ""},
	})
	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, archiver.keys, 1)
	assert.Equal(t, archiver.keys[0], res.ArchiveKey)

	run, err := dao.NewImportRunDAO(db).GetImportRunByID(context.Background(), res.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "intents", run.Kind)
	assert.Equal(t, 1, run.Inserted)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, res.ArchiveKey, run.ArchiveKey)

	select {
	case ev := <-sub:
		assert.Equal(t, events.TypeImportCompleted, ev.Type)
		assert.Equal(t, res.RunID, ev.RunID)
		assert.Equal(t, 1, ev.Count)
		assert.Equal(t, 1, ev.Failed)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestArchiveFailureDoesNotFailImport(t *testing.T) {
	im := NewImporter(psqltest.NewTestDB(t), WithArchiver(&fakeArchiver{err: errors.New("bucket gone")}))
	path := writeJSON(t, "intent_broader_categories.json", []map[string]any{
		{"standardized_category": "Bug Fix", "broader_categories": "Quality"},
	})
	res, err := im.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Empty(t, res.ArchiveKey)
}

func TestDetectKind(t *testing.T) {
	cases := map[string]Kind{
		"data/intent_broader_categories.json":     KindIntents,
		"work_area_broader_categories.json":       KindWorkAreas,
		"user_capabilities_analysis.json":         KindCapabilities,
		"training_recommendation_analysis.json":   KindTraining,
		"attached_assets/consolidated_openai.CSV": KindReviews,
	}
	for path, want := range cases {
		got, err := DetectKind(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectKind("readme.md")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("work_areas")
	require.NoError(t, err)
	assert.Equal(t, KindWorkAreas, k)
	assert.True(t, k.Snapshot())
	assert.False(t, KindReviews.Snapshot())

	_, err = ParseKind("users")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestStringListAcceptsTextOrArray(t *testing.T) {
	var rec intentRecord
	require.NoError(t, json.Unmarshal([]byte(`{"broader_categories": " A, ,B "}`), &rec))
	assert.Equal(t, stringList{"A", "B"}, rec.BroaderCategories)

	require.NoError(t, json.Unmarshal([]byte(`{"broader_categories": ["C", " "]}`), &rec))
	assert.Equal(t, stringList{"C"}, rec.BroaderCategories)

	assert.Error(t, json.Unmarshal([]byte(`{"broader_categories": 3}`), &rec))
}
