package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"movierec/internal/logging"
)

// ErrImportInProgress is returned when another process holds the import lock.
var ErrImportInProgress = errors.New("corpus import already in progress")

// SQLiteSource reads a corpus database written by Import.
type SQLiteSource struct {
	Path    string
	Options Options
}

// Load implements Source.
func (s SQLiteSource) Load(ctx context.Context) ([]Record, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError(s.Path, "database not found (run 'movierec corpus import')", err)
		}
		return nil, newLoadError(s.Path, "stat database", err)
	}
	lock := flock.New(lockPath(s.Path))
	if err := lock.RLock(); err != nil {
		return nil, newLoadError(s.Path, "acquire read lock", err)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := OpenStoreReadOnly(ctx, s.Path)
	if err != nil {
		return nil, newLoadError(s.Path, "open database", err)
	}
	defer store.Close()
	return store.Records(ctx, s.Options)
}

// Describe implements Source.
func (s SQLiteSource) Describe() string {
	return "sqlite:" + s.Path
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Source       string
	DatabasePath string
	Records      int
	Duration     time.Duration
}

// Import loads src and replaces the corpus stored at dbPath. An exclusive
// lock file next to the database keeps concurrent imports and loads apart.
func Import(ctx context.Context, src Source, dbPath string, logger *slog.Logger) (ImportResult, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "corpus"))
	start := time.Now()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return ImportResult{}, fmt.Errorf("create database directory: %w", err)
	}
	lock := flock.New(lockPath(dbPath))
	locked, err := lock.TryLock()
	if err != nil {
		return ImportResult{}, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return ImportResult{}, fmt.Errorf("%w: lock held at %s", ErrImportInProgress, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release import lock", logging.Error(err))
		}
	}()

	records, err := src.Load(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	store, err := OpenStore(ctx, dbPath)
	if err != nil {
		return ImportResult{}, err
	}
	defer store.Close()

	if err := store.Replace(ctx, records); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		Source:       src.Describe(),
		DatabasePath: dbPath,
		Records:      len(records),
		Duration:     time.Since(start),
	}
	logger.Info("corpus imported",
		logging.String("source", result.Source),
		logging.String("database", dbPath),
		logging.Int("records", result.Records),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func lockPath(dbPath string) string {
	return dbPath + ".lock"
}
