// reviewdash/sources/psql/models/lookup.go
package models

import (
	"strings"

	"gorm.io/datatypes"
)

// Intent maps a standardized category to its broader categories.
type Intent struct {
	ID                   uint                        `json:"id" gorm:"primaryKey;autoIncrement"`
	StandardizedCategory string                      `json:"standardized_category" gorm:"type:varchar(255);not null;unique"`
	BroaderCategories    string                      `json:"broader_categories" gorm:"type:text;not null"`
	Keywords             datatypes.JSONSlice[string] `json:"keywords"`
	Description          string                      `json:"description" gorm:"type:text;default:''"`
}

func (Intent) TableName() string {
	return "intents"
}

// WorkArea maps a standardized work area to its broader areas.
type WorkArea struct {
	ID                   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	StandardizedWorkArea string `json:"standardized_work_area" gorm:"type:varchar(255);not null;unique"`
	BroaderCategories    string `json:"broader_categories" gorm:"type:text;not null"`
}

func (WorkArea) TableName() string {
	return "work_areas"
}

// SplitList splits comma separated text, trimming blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
