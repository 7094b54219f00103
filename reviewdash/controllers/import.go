// reviewdash/controllers/import.go
package controllers

import (
	"context"
	"errors"
	"path"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/services/importer"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"

	"github.com/google/uuid"
)

// DefaultImportHistory is how many runs the history endpoint returns.
const DefaultImportHistory = 20

var (
	ErrRunNotFound     = errors.New("import run not found")
	ErrArchiveDisabled = errors.New("import archiving is not configured")
)

// ArchiveReader reads back archived import sources.
type ArchiveReader interface {
	GetArchive(ctx context.Context, key string) ([]byte, error)
}

// ImportController triggers imports from the configured server-side paths.
type ImportController struct {
	importer *importer.Importer
	runs     *dao.ImportRunDAO
	archive  ArchiveReader
	paths    map[importer.Kind]string
}

func NewImportController(imp *importer.Importer, runs *dao.ImportRunDAO, archive ArchiveReader, cfg config.Config) *ImportController {
	return &ImportController{
		importer: imp,
		runs:     runs,
		archive:  archive,
		paths: map[importer.Kind]string{
			importer.KindReviews:      cfg.ReviewsPath,
			importer.KindIntents:      cfg.IntentsPath,
			importer.KindWorkAreas:    cfg.WorkAreasPath,
			importer.KindCapabilities: cfg.CapabilitiesPath,
			importer.KindTraining:     cfg.TrainingPath,
		},
	}
}

// Import runs the import of kind from its configured path.
func (c *ImportController) Import(ctx context.Context, kind importer.Kind) (*importer.Result, error) {
	p, ok := c.paths[kind]
	if !ok || p == "" {
		return nil, importer.ErrUnknownKind
	}
	return c.importer.ImportKind(ctx, kind, p)
}

func (c *ImportController) ListRuns(ctx context.Context, limit int) ([]models.ImportRun, error) {
	if limit <= 0 {
		limit = DefaultImportHistory
	}
	return c.runs.ListRecentImportRuns(ctx, limit)
}

func (c *ImportController) GetRun(ctx context.Context, id uuid.UUID) (*models.ImportRun, error) {
	run, err := c.runs.GetImportRunByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// ArchivedSource returns the archived file of a run and its base name.
func (c *ImportController) ArchivedSource(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if c.archive == nil {
		return nil, "", ErrArchiveDisabled
	}
	run, err := c.GetRun(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if run.ArchiveKey == "" {
		return nil, "", ErrRunNotFound
	}
	data, err := c.archive.GetArchive(ctx, run.ArchiveKey)
	if err != nil {
		return nil, "", err
	}
	return data, path.Base(run.ArchiveKey), nil
}
