package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/datatypes"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type reviewRow struct {
	index  int
	review *models.CodeReview
	err    error
}

type csvRecord struct {
	columns map[string]int
	fields  []string
}

func (r csvRecord) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// parseReviews tokenizes a review CSV. Rows with the wrong number of fields
// come back as row errors; any other CSV error fails the whole file.
func parseReviews(data []byte) ([]reviewRow, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"filename", "standardized_category"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrParse, required)
		}
	}

	var rows []reviewRow
	for index := 1; ; index++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			rows = append(rows, reviewRow{index: index, err: invalid("%v", err)})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		review, err := buildReview(csvRecord{columns: columns, fields: fields})
		rows = append(rows, reviewRow{index: index, review: review, err: err})
	}
	return rows, nil
}

func buildReview(rec csvRecord) (*models.CodeReview, error) {
	filename := rec.get("filename")
	category := rec.get("standardized_category")
	if filename == "" {
		return nil, invalid("missing filename")
	}
	if category == "" {
		return nil, invalid("missing standardized_category")
	}
	review := &models.CodeReview{
		Filename:             filename,
		RawCategory:          rec.get("raw_category"),
		StandardizedCategory: category,
		RawIntent:            rec.get("raw_intent"),
		StandardizedIntent:   rec.get("standardized_intent"),
		Provider:             rec.get("provider"),
		CapabilityAnalysis:   datatypes.JSONSlice[string](splitList(rec.get("capability_analysis"))),
		SuggestedTraining:    datatypes.JSONSlice[string](splitList(rec.get("suggested_training"))),
	}
	if ts := rec.get("processed_timestamp"); ts != "" {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		review.ProcessedTimestamp = &parsed
	}
	seen := make(map[string]bool)
	for _, area := range splitList(rec.get("related_work_areas")) {
		if seen[area] {
			continue
		}
		seen[area] = true
		review.WorkAreas = append(review.WorkAreas, models.ReviewWorkArea{WorkArea: area})
	}
	return review, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("unrecognized processed_timestamp %q", s)
}

// insertReviews appends rows one at a time. A failed row does not undo the
// rows before it.
func (im *Importer) insertReviews(ctx context.Context, rows []reviewRow, res *Result) {
	reviews := dao.NewReviewDAO(im.db)
	for _, row := range rows {
		if row.err != nil {
			res.recordError(row.index, row.err)
			continue
		}
		if err := reviews.CreateReview(ctx, row.review); err != nil {
			res.recordError(row.index, err)
			continue
		}
		res.Count++
	}
}
