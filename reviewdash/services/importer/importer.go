// Package importer loads review and lookup files wholesale into the store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"reviewdash/reviewdash/services/events"
	"reviewdash/reviewdash/sources/psql/dao"
	"reviewdash/reviewdash/sources/psql/models"
	"reviewdash/reviewdash/utils/logging"
	"reviewdash/reviewdash/utils/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Archiver keeps a copy of every imported source file.
type Archiver interface {
	ArchiveImport(ctx context.Context, kind, runID, sourcePath string) (string, error)
}

// Publisher receives an event when an import completes.
type Publisher interface {
	Publish(ev events.Event)
}

// Result summarizes one import call.
type Result struct {
	RunID      uuid.UUID `json:"runId"`
	Kind       Kind      `json:"kind"`
	Count      int       `json:"count"`
	Errors     []string  `json:"errors"`
	ArchiveKey string    `json:"archiveKey,omitempty"`
}

func (r *Result) recordError(index int, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("record %d: %v", index, err))
}

type Importer struct {
	db        *gorm.DB
	runs      *dao.ImportRunDAO
	archiver  Archiver
	publisher Publisher

	mu    sync.Mutex
	locks map[Kind]*sync.Mutex
}

type Option func(*Importer)

func WithArchiver(a Archiver) Option {
	return func(im *Importer) { im.archiver = a }
}

func WithPublisher(p Publisher) Option {
	return func(im *Importer) { im.publisher = p }
}

func NewImporter(db *gorm.DB, opts ...Option) *Importer {
	im := &Importer{
		db:    db,
		runs:  dao.NewImportRunDAO(db),
		locks: make(map[Kind]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// lockFor serializes imports of the same kind within the process.
func (im *Importer) lockFor(kind Kind) *sync.Mutex {
	im.mu.Lock()
	defer im.mu.Unlock()
	l, ok := im.locks[kind]
	if !ok {
		l = &sync.Mutex{}
		im.locks[kind] = l
	}
	return l
}

// Import infers the target table from the path and imports the file.
func (im *Importer) Import(ctx context.Context, path string) (*Result, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return nil, err
	}
	return im.ImportKind(ctx, kind, path)
}

// ImportKind imports path into the table selected by kind.
func (im *Importer) ImportKind(ctx context.Context, kind Kind, path string) (*Result, error) {
	defer logging.LogDuration(ctx, "importer."+string(kind))()
	lock := im.lockFor(kind)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	res, err := im.run(ctx, kind, path)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		metrics.RecordImport(string(kind), "failed", elapsed)
		logging.ErrorLogger.Error("import failed",
			zap.String("kind", string(kind)),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordImport(string(kind), "success", elapsed)
	metrics.RecordImportRecords(string(kind), res.Count, len(res.Errors))
	im.finish(ctx, path, started, res)
	return res, nil
}

func (im *Importer) run(ctx context.Context, kind Kind, path string) (*Result, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.New(), Kind: kind, Errors: []string{}}

	if !kind.Snapshot() {
		rows, err := parseReviews(data)
		if err != nil {
			return nil, err
		}
		im.insertReviews(ctx, rows, res)
		return res, nil
	}

	var rows []snapshotRow
	switch kind {
	case KindIntents:
		rows, err = parseIntents(data)
	case KindWorkAreas:
		rows, err = parseWorkAreas(data)
	case KindCapabilities:
		rows, err = parseCapabilities(data)
	case KindTraining:
		rows, err = parseTraining(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	if err := im.replaceSnapshot(ctx, kind, rows, res); err != nil {
		return nil, err
	}
	return res, nil
}

// finish archives the source, records the run and notifies subscribers.
// None of these steps can fail an import that already committed.
func (im *Importer) finish(ctx context.Context, path string, started time.Time, res *Result) {
	if im.archiver != nil {
		key, err := im.archiver.ArchiveImport(ctx, string(res.Kind), res.RunID.String(), path)
		if err != nil {
			logging.ErrorLogger.Error("archive import source", zap.String("path", path), zap.Error(err))
		} else {
			res.ArchiveKey = key
		}
	}

	finished := time.Now()
	run := &models.ImportRun{
		ID:         res.RunID,
		Kind:       string(res.Kind),
		SourcePath: path,
		Inserted:   res.Count,
		Failed:     len(res.Errors),
		Errors:     datatypes.JSONSlice[string](res.Errors),
		ArchiveKey: res.ArchiveKey,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if err := im.runs.CreateImportRun(ctx, run); err != nil {
		logging.ErrorLogger.Error("record import run", zap.String("run_id", res.RunID.String()), zap.Error(err))
	}

	if im.publisher != nil {
		im.publisher.Publish(events.Event{
			Type:     events.TypeImportCompleted,
			Kind:     string(res.Kind),
			RunID:    res.RunID,
			Count:    res.Count,
			Failed:   len(res.Errors),
			Occurred: finished,
		})
	}

	logging.AppLogger.Info("import completed",
		zap.String("run_id", res.RunID.String()),
		zap.String("kind", string(res.Kind)),
		zap.String("path", path),
		zap.Int("inserted", res.Count),
		zap.Int("failed", len(res.Errors)),
	)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
