package csvlog_test

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/repository"
	"github.com/Houeta/pair-compare/internal/repository/csvlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestLog is a helper function that creates a log in a temporary directory.
func newTestLog(t *testing.T) *csvlog.Log {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	started := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	l, err := csvlog.New(logger, filepath.Join(t.TempDir(), "data"), started)
	require.NoError(t, err, "failed to create test log")

	return l
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	return rows
}

func acceptedPair() []models.Record {
	first := models.NewRecord("https://shop.example.com/a")
	first.Title = models.Found("Kettle, \"steel\"")
	first.Price = models.Found("29")
	first.Slot = models.SlotFirst
	first.Status = models.StatusAccepted

	second := models.NewRecord("https://shop.example.com/b")
	second.Title = models.Found("Error fetching product: status code error: [404] Not Found")
	second.Slot = models.SlotSecond
	second.Status = models.StatusAccepted

	return []models.Record{first, second}
}

func TestNew(t *testing.T) {
	l := newTestLog(t)

	assert.Equal(t, "product_comparisons_20261018_093000.csv", filepath.Base(l.Path()))
	assert.DirExists(t, l.Dir())
	assert.NoFileExists(t, l.Path(), "file is created lazily")
}

func TestNew_InvalidDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := csvlog.New(slog.Default(), filepath.Join(blocker, "data"), time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestAppend(t *testing.T) {
	l := newTestLog(t)
	ctx := t.Context()

	path, err := l.Append(ctx, acceptedPair())
	require.NoError(t, err)
	assert.Equal(t, l.Path(), path)

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, csvlog.Header(), rows[0])
	assert.Equal(t, []string{"Product 1", "Accepted", "Kettle, \"steel\"", "29", models.NotFound, models.NotFound, models.NotFound, "", "https://shop.example.com/a"}, rows[1][1:])
	assert.Equal(t, "Product 2", rows[2][1])
	_, err = time.Parse("2006-01-02 15:04:05", rows[1][0])
	require.NoError(t, err)
}

func TestAppend_CRLFLineEndings(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Append(t.Context(), acceptedPair())
	require.NoError(t, err)

	raw, err := os.ReadFile(l.Path())
	require.NoError(t, err)

	lines := strings.SplitAfter(string(raw), "\n")
	require.Len(t, lines, 4, "three rows and the trailing empty split")
	assert.Equal(t, strings.Join(csvlog.Header(), ",")+"\r\n", lines[0])
	for _, line := range lines[:3] {
		assert.True(t, strings.HasSuffix(line, "\r\n"), line)
	}
	assert.Empty(t, lines[3])
}

func TestAppend_TwiceKeepsBothPairs(t *testing.T) {
	l := newTestLog(t)
	ctx := t.Context()

	clock := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	csvlog.SetClock(l, func() time.Time { return clock })
	_, err := l.Append(ctx, acceptedPair())
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	_, err = l.Append(ctx, acceptedPair())
	require.NoError(t, err)

	rows := readRows(t, l.Path())
	require.Len(t, rows, 5, "one header and two row pairs")
	assert.Equal(t, "2026-10-18 10:00:00", rows[1][0])
	assert.Equal(t, "2026-10-18 10:01:00", rows[3][0])
	assert.Equal(t, rows[1][1:], rows[3][1:])
	assert.Equal(t, rows[2][1:], rows[4][1:])
}

func TestAppend_SkipsPlaceholders(t *testing.T) {
	l := newTestLog(t)

	records := []models.Record{acceptedPair()[0], models.NewPlaceholder(models.SlotSecond)}
	_, err := l.Append(t.Context(), records)
	require.NoError(t, err)

	assert.Len(t, readRows(t, l.Path()), 2)
}

func TestAppend_Concurrent(t *testing.T) {
	l := newTestLog(t)
	ctx := t.Context()

	const writers = 20
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Append(ctx, acceptedPair())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows := readRows(t, l.Path())
	require.Len(t, rows, 1+2*writers)
	for _, row := range rows[1:] {
		assert.Len(t, row, len(csvlog.Header()))
	}
}

func TestLatest(t *testing.T) {
	t.Run("no directory", func(t *testing.T) {
		_, err := csvlog.Latest(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, repository.ErrNoLogAvailable)
	})

	t.Run("empty directory", func(t *testing.T) {
		l := newTestLog(t)

		_, err := l.Latest()
		require.ErrorIs(t, err, repository.ErrNoLogAvailable)
	})

	t.Run("newest file wins", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "product_comparisons_20260101_000000.csv")
		newer := filepath.Join(dir, "product_comparisons_20250101_000000.csv")
		require.NoError(t, os.WriteFile(older, []byte("a\n"), 0o600))
		require.NoError(t, os.WriteFile(newer, []byte("b\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("c\n"), 0o600))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0o750))

		now := time.Now()
		require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
		require.NoError(t, os.Chtimes(newer, now, now))

		latest, err := csvlog.Latest(dir)

		require.NoError(t, err)
		assert.Equal(t, newer, latest)
	})
}

func TestWriteXLSX(t *testing.T) {
	l := newTestLog(t)
	_, err := l.Append(t.Context(), acceptedPair())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csvlog.WriteXLSX(l.Path(), &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Comparisons")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvlog.Header(), rows[0])
	assert.Equal(t, "Kettle, \"steel\"", rows[1][3])
}

func TestWriteXLSX_MissingFile(t *testing.T) {
	err := csvlog.WriteXLSX(filepath.Join(t.TempDir(), "nope.csv"), io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log")
}
