package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// snapshotRow is one parsed record of a lookup file. err is set when the
// record failed validation; insert is nil in that case.
type snapshotRow struct {
	index  int
	key    string
	err    error
	insert func(ctx context.Context, tx *gorm.DB) error
}

func clearFunc(kind Kind) func(ctx context.Context, tx *gorm.DB) error {
	switch kind {
	case KindIntents:
		return func(ctx context.Context, tx *gorm.DB) error { return dao.NewIntentDAO(tx).DeleteAllIntents(ctx) }
	case KindWorkAreas:
		return func(ctx context.Context, tx *gorm.DB) error { return dao.NewWorkAreaDAO(tx).DeleteAllWorkAreas(ctx) }
	case KindCapabilities:
		return func(ctx context.Context, tx *gorm.DB) error {
			return dao.NewCapabilityDAO(tx).DeleteAllCapabilities(ctx)
		}
	case KindTraining:
		return func(ctx context.Context, tx *gorm.DB) error {
			return dao.NewTrainingDAO(tx).DeleteAllRecommendations(ctx)
		}
	}
	return nil
}

// replaceSnapshot deletes every row of the table and inserts rows in file
// order inside one transaction. Each insert runs under its own savepoint so
// a rejected row is rolled back alone.
func (im *Importer) replaceSnapshot(ctx context.Context, kind Kind, rows []snapshotRow, res *Result) error {
	clearTable := clearFunc(kind)
	if clearTable == nil {
		return fmt.Errorf("%w: %q is not a snapshot table", ErrUnknownKind, kind)
	}
	return im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTable(ctx, tx); err != nil {
			return fmt.Errorf("clear %s: %w", kind, err)
		}
		seen := make(map[string]int, len(rows))
		for _, row := range rows {
			if row.err != nil {
				res.recordError(row.index, row.err)
				continue
			}
			if first, dup := seen[row.key]; dup {
				res.recordError(row.index, invalid("duplicate %q, first seen in record %d", row.key, first))
				continue
			}
			sp := fmt.Sprintf("record_%d", row.index)
			if err := tx.SavePoint(sp).Error; err != nil {
				return fmt.Errorf("savepoint: %w", err)
			}
			if err := row.insert(ctx, tx); err != nil {
				if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
					return fmt.Errorf("rollback to savepoint: %w", rbErr)
				}
				res.recordError(row.index, err)
				continue
			}
			seen[row.key] = row.index
			res.Count++
		}
		return nil
	})
}

func decodeRecord(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func parseIntents(data []byte) ([]snapshotRow, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	rows := make([]snapshotRow, 0, len(items))
	for i, raw := range items {
		row := snapshotRow{index: i + 1}
		var rec intentRecord
		if row.err = decodeRecord(raw, &rec); row.err == nil {
			name := strings.TrimSpace(rec.StandardizedCategory)
			switch {
			case name == "":
				row.err = invalid("missing standardized_category")
			case len(rec.BroaderCategories) == 0:
				row.err = invalid("missing broader_categories")
			default:
				m := &models.Intent{
					StandardizedCategory: name,
					BroaderCategories:    rec.BroaderCategories.Join(),
					Keywords:             datatypes.JSONSlice[string](nonNil(rec.Keywords)),
					Description:          strings.TrimSpace(rec.Description),
				}
				row.key = name
				row.insert = func(ctx context.Context, tx *gorm.DB) error {
					return dao.NewIntentDAO(tx).CreateIntent(ctx, m)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseWorkAreas(data []byte) ([]snapshotRow, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	rows := make([]snapshotRow, 0, len(items))
	for i, raw := range items {
		row := snapshotRow{index: i + 1}
		var rec workAreaRecord
		if row.err = decodeRecord(raw, &rec); row.err == nil {
			name := strings.TrimSpace(rec.StandardizedWorkArea)
			broader := rec.BroaderCategories
			if len(broader) == 0 {
				broader = rec.BroaderWorkAreas
			}
			switch {
			case name == "":
				row.err = invalid("missing standardized_work_area")
			case len(broader) == 0:
				row.err = invalid("missing broader_categories")
			default:
				m := &models.WorkArea{StandardizedWorkArea: name, BroaderCategories: broader.Join()}
				row.key = name
				row.insert = func(ctx context.Context, tx *gorm.DB) error {
					return dao.NewWorkAreaDAO(tx).CreateWorkArea(ctx, m)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCapabilities(data []byte) ([]snapshotRow, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	rows := make([]snapshotRow, 0, len(items))
	for i, raw := range items {
		row := snapshotRow{index: i + 1}
		var rec capabilityRecord
		if row.err = decodeRecord(raw, &rec); row.err == nil {
			cat := strings.TrimSpace(rec.StandardizedCategory)
			query := strings.TrimSpace(rec.UserQuery)
			scores := models.CapabilityScores(toFloatMap(rec.CapabilityAnalysis))
			switch {
			case cat == "":
				row.err = invalid("missing standardized_category")
			case query == "":
				row.err = invalid("missing user_query")
			default:
				if err := scores.Validate(); err != nil {
					row.err = invalid("%v", err)
					break
				}
				m := &models.UserCapability{
					StandardizedCategory: cat,
					UserQuery:            query,
					CapabilityAnalysis:   datatypes.NewJSONType(scores),
				}
				row.key = cat + "\x00" + query
				row.insert = func(ctx context.Context, tx *gorm.DB) error {
					return dao.NewCapabilityDAO(tx).CreateCapability(ctx, m)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseTraining(data []byte) ([]snapshotRow, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	rows := make([]snapshotRow, 0, len(items))
	for i, raw := range items {
		row := snapshotRow{index: i + 1}
		var rec trainingRecord
		if row.err = decodeRecord(raw, &rec); row.err == nil {
			cat := strings.TrimSpace(rec.StandardizedCategory)
			if cat == "" {
				row.err = invalid("missing standardized_category")
				rows = append(rows, row)
				continue
			}
			plan, err := models.NewTrainingPlan(toFloatMap(rec.TrainingAnalysis.TrainingPlan))
			if err != nil {
				row.err = invalid("%v", err)
				rows = append(rows, row)
				continue
			}
			m := &models.TrainingRecommendation{
				StandardizedCategory: cat,
				TrainingQuery:        strings.TrimSpace(rec.TrainingAnalysis.TrainingQuery),
				TrainingPlan:         datatypes.NewJSONType(plan),
			}
			row.key = cat
			row.insert = func(ctx context.Context, tx *gorm.DB) error {
				return dao.NewTrainingDAO(tx).CreateRecommendation(ctx, m)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func nonNil(l stringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
