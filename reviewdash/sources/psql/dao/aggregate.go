// reviewdash/sources/psql/dao/aggregate.go
package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GroupCount is one row of a GROUP BY ... COUNT query.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// groupCount groups model rows by column, skipping blank keys, and orders
// the result by count descending then name ascending. column and countExpr
// are never user supplied.
func groupCount(ctx context.Context, db *gorm.DB, model any, column, countExpr string) ([]GroupCount, error) {
	var rows []GroupCount
	err := db.WithContext(ctx).
		Model(model).
		Select(fmt.Sprintf("%s AS name, %s AS count", column, countExpr)).
		Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, column)).
		Group(column).
		Order("count DESC").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
