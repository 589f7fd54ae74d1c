package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/parser"
	"github.com/Houeta/pair-compare/internal/services/compare"
)

var ErrUnknownAction = errors.New("unknown action")

// notifyTimeout bounds one round of listener notifications.
const notifyTimeout = 30 * time.Second

// Journal is the append-only log accepted pairs are written to.
type Journal interface {
	Append(ctx context.Context, records []models.Record) (string, error)
}

// Listener is told about every pair after it reached the journal.
type Listener interface {
	PairSaved(ctx context.Context, records []models.Record) error
}

// Result is what the presentation layer renders.
type Result struct {
	Records            []models.Record
	Diff               []models.FieldDiff
	EditableSecondSlot bool
	Success            bool
	LogPath            string
}

// Controller drives record creation, pairing and persistence for one request at a time.
// It keeps no state between requests apart from in-flight notifications.
type Controller struct {
	log       *slog.Logger
	extractor parser.Extractor
	journal   Journal
	listeners []Listener
	notifying sync.WaitGroup
}

// NewController creates a new Controller instance.
func NewController(log *slog.Logger, extractor parser.Extractor, journal Journal, listeners ...Listener) *Controller {
	return &Controller{log: log, extractor: extractor, journal: journal, listeners: listeners}
}

// Handle dispatches action to its handling path. Fetches and saves are not cut short
// when the caller goes away; only the transport timeout bounds a fetch.
func (c *Controller) Handle(ctx context.Context, action Action) (*Result, error) {
	ctx = context.WithoutCancel(ctx)

	switch act := action.(type) {
	case EditSubmit:
		return c.persist(ctx, "edit", EditedPair(act))
	case Accept:
		return c.persist(ctx, "accept", AcceptedPair(act))
	case NewProduct:
		return c.fetchSingle(ctx, act.URL), nil
	case FreshComparison:
		return c.fetchComparison(ctx, act), nil
	default:
		return nil, fmt.Errorf("workflow.Handle: %w: %T", ErrUnknownAction, action)
	}
}

func (c *Controller) persist(ctx context.Context, kind string, records []models.Record) (*Result, error) {
	const opn = "workflow.persist"
	log := c.log.With("op", opn, "action", kind)

	path, err := c.journal.Append(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to append %s pair: %w", opn, kind, err)
	}
	log.InfoContext(ctx, "Pair saved", "path", path)

	c.notify(ctx, log, records)

	return &Result{Records: []models.Record{}, Success: true, LogPath: path}, nil
}

// notify tells every listener about a saved pair in the background.
func (c *Controller) notify(ctx context.Context, log *slog.Logger, records []models.Record) {
	if len(c.listeners) == 0 {
		return
	}

	c.notifying.Add(1)
	go func() {
		defer c.notifying.Done()

		notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		for _, l := range c.listeners {
			if err := l.PairSaved(notifyCtx, records); err != nil {
				log.WarnContext(notifyCtx, "Pair listener failed", "listener", fmt.Sprintf("%T", l), "error", err)
			}
		}
	}()
}

// Wait blocks until pending notifications have finished.
func (c *Controller) Wait() {
	c.notifying.Wait()
}

// fetchSingle fetches the first slot and opens an empty editable second slot.
func (c *Controller) fetchSingle(ctx context.Context, url string) *Result {
	if url == "" {
		return &Result{Records: []models.Record{}}
	}

	first := c.extractor.Extract(ctx, url).WithSlot(models.SlotFirst)

	return &Result{
		Records:            []models.Record{first, models.NewPlaceholder(models.SlotSecond)},
		EditableSecondSlot: true,
	}
}

func (c *Controller) fetchComparison(ctx context.Context, act FreshComparison) *Result {
	switch {
	case act.FirstURL != "" && act.SecondURL != "":
		records := c.fetchPair(ctx, act.FirstURL, act.SecondURL)
		return &Result{Records: records, Diff: compare.Fields(records[0], records[1])}
	case act.FirstURL != "":
		return c.fetchSingle(ctx, act.FirstURL)
	default:
		return &Result{Records: []models.Record{}}
	}
}

// fetchPair extracts both slots concurrently; each slot degrades independently.
func (c *Controller) fetchPair(ctx context.Context, firstURL, secondURL string) []models.Record {
	records := make([]models.Record, 2) //nolint:mnd // a pair
	slots := []struct {
		slot models.Slot
		url  string
	}{{models.SlotFirst, firstURL}, {models.SlotSecond, secondURL}}

	var wg sync.WaitGroup
	for i, s := range slots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i] = c.extractor.Extract(ctx, s.url).WithSlot(s.slot)
		}()
	}
	wg.Wait()

	c.log.DebugContext(ctx, "Pair fetched", "op", "workflow.fetchPair", "changed", compare.Changed(compare.Fields(records[0], records[1])))

	return records
}
