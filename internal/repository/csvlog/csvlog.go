package csvlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/repository"
)

const (
	fileExt         = ".csv"
	fileNameLayout  = "20060102_150405"
	timestampLayout = "2006-01-02 15:04:05"
)

// Header is the first row of every log file.
func Header() []string {
	return []string{"timestamp", "product_type", "status", "title", "price", "rating", "description", "details", "image", "url"}
}

// Log is the append-only comparison log of one process run.
// Appends are serialized; rows from concurrent requests never interleave.
type Log struct {
	mu   sync.Mutex
	log  *slog.Logger
	dir  string
	path string
	now  func() time.Time
}

// New ensures dir exists and names the run's log file after startedAt.
// The file itself is created on the first Append.
func New(log *slog.Logger, dir string, startedAt time.Time) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	name := "product_comparisons_" + startedAt.Format(fileNameLayout) + fileExt

	return &Log{
		log:  log,
		dir:  dir,
		path: filepath.Join(dir, name),
		now:  time.Now,
	}, nil
}

// Path is the log file of this run.
func (l *Log) Path() string {
	return l.path
}

// Dir is the directory holding all runs' logs.
func (l *Log) Dir() string {
	return l.dir
}

// Append writes one row per live record, stamped with the save time, and returns the log path.
// Placeholders are skipped.
func (l *Log) Append(ctx context.Context, records []models.Record) (string, error) {
	const opn = "repository.csvlog.Append"

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:mnd // rw-r--r--
	if err != nil {
		return "", fmt.Errorf("%s: failed to open log file: %w", opn, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%s: failed to stat log file: %w", opn, err)
	}

	writer := csv.NewWriter(file)
	writer.UseCRLF = true
	if info.Size() == 0 {
		if err = writer.Write(Header()); err != nil {
			return "", fmt.Errorf("%s: failed to write header: %w", opn, err)
		}
	}

	savedAt := l.now().Format(timestampLayout)
	written := 0
	for _, record := range records {
		if record.Placeholder {
			continue
		}
		if err = writer.Write(Row(record, savedAt)); err != nil {
			return "", fmt.Errorf("%s: failed to write row: %w", opn, err)
		}
		written++
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return "", fmt.Errorf("%s: failed to flush rows: %w", opn, err)
	}

	if err = file.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to close log file: %w", opn, err)
	}

	l.log.InfoContext(ctx, "Records appended to log", "op", opn, "path", l.path, "rows", written)

	return l.path, nil
}

// Row renders a record in Header order.
func Row(record models.Record, savedAt string) []string {
	return []string{
		savedAt,
		record.Slot.Label(),
		string(record.Status),
		record.Title.Text(),
		record.Price.Text(),
		record.Rating.Text(),
		record.Description.Text(),
		record.Details.Text(),
		record.Image,
		record.URL,
	}
}

// Latest returns the most recently modified log file in the log directory.
func (l *Log) Latest() (string, error) {
	return Latest(l.dir)
}

// Latest returns the most recently modified .csv file in dir, or repository.ErrNoLogAvailable.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", repository.ErrNoLogAvailable
		}
		return "", fmt.Errorf("failed to read log directory %s: %w", dir, err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), fileExt) {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		modTime := info.ModTime()
		if newest == "" || modTime.After(newestTime) || (modTime.Equal(newestTime) && entry.Name() > newest) {
			newest, newestTime = entry.Name(), modTime
		}
	}

	if newest == "" {
		return "", repository.ErrNoLogAvailable
	}

	return filepath.Join(dir, newest), nil
}
