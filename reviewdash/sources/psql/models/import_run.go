// reviewdash/sources/psql/models/import_run.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportRun records the outcome of one import call.
type ImportRun struct {
	ID         uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Kind       string                      `json:"kind" gorm:"type:varchar(64);not null;index"`
	SourcePath string                      `json:"source_path" gorm:"type:text;not null"`
	Inserted   int                         `json:"inserted" gorm:"not null;default:0"`
	Failed     int                         `json:"failed" gorm:"not null;default:0"`
	Errors     datatypes.JSONSlice[string] `json:"errors"`
	ArchiveKey string                      `json:"archive_key,omitempty" gorm:"type:text;default:''"`
	StartedAt  time.Time                   `json:"started_at" gorm:"not null"`
	FinishedAt time.Time                   `json:"finished_at" gorm:"not null"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

func (r *ImportRun) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
