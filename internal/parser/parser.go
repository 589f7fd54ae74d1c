package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/Houeta/pair-compare/internal/config"
	"github.com/Houeta/pair-compare/internal/models"
	"github.com/PuerkitoBio/goquery"
)

var (
	ErrStatus = errors.New("status code error")
	ErrParse  = errors.New("unexpected document shape")
)

// Extractor turns a product page URL into a Record.
type Extractor interface {
	// Extract never fails: transport and parse failures degrade the returned record.
	Extract(ctx context.Context, url string) models.Record
}

type Parser struct {
	log    *slog.Logger
	client *http.Client
	agents []string

	minDelay time.Duration
	maxDelay time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	fields   func(doc *goquery.Document, url string) models.Record
}

// NewParser creates a Parser with the politeness settings from cfg.
func NewParser(log *slog.Logger, cfg config.Fetch) *Parser {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib default
	if cfg.TLSFingerprint {
		transport = newChromeTransport()
	}

	return &Parser{
		log:      log,
		client:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		agents:   cfg.UserAgents,
		minDelay: cfg.MinDelay,
		maxDelay: cfg.MaxDelay,
		sleep:    sleepContext,
		fields:   extractFields,
	}
}

// Extract fetches url and resolves every field through its strategy chain.
func (p *Parser) Extract(ctx context.Context, url string) models.Record {
	const opn = "parser.Extract"
	log := p.log.With("op", opn, "url", url)

	record := models.NewRecord(url)

	body, err := p.getHTMLResponse(ctx, url)
	if err != nil {
		log.WarnContext(ctx, "Failed to fetch product page", "error", err)
		record.Title = models.Found(fmt.Sprintf("Error fetching product: %v", err))
		return record
	}

	parsed, err := p.parseProduct(ctx, url, body)
	if err != nil {
		log.WarnContext(ctx, "Failed to parse product page", "error", err)
		record.Title = models.Found(fmt.Sprintf("Error parsing product: %v", err))
		return record
	}

	log.InfoContext(ctx, "Product extracted", "title", parsed.Title.Text(), "price", parsed.Price.Text())

	return parsed
}

// parseProduct resolves each field independently; a missing field never fails the record.
func (p *Parser) parseProduct(ctx context.Context, url string, body []byte) (record models.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return models.Record{}, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	record = p.fields(doc, url)

	p.log.DebugContext(
		ctx,
		"Parsed product",
		"title_found", record.Title.Found,
		"price_found", record.Price.Found,
		"rating_found", record.Rating.Found,
		"details_found", record.Details.Found,
		"image_found", record.Image != "",
	)

	return record, nil
}

// extractFields resolves every field of url's document through its strategy chain.
func extractFields(doc *goquery.Document, url string) models.Record {
	record := models.NewRecord(url)
	record.Title = resolve(doc, titleStrategies...)
	record.Price = resolve(doc, priceStrategies...)
	record.Rating = resolve(doc, ratingStrategies...)
	record.Description = truncate(resolve(doc, descriptionStrategies...), maxDescriptionRunes)
	record.Details = extractDetails(doc)
	record.Image = resolve(doc, imageStrategies...).Value
	return record
}

// politeDelay picks a pause in [minDelay, maxDelay).
func (p *Parser) politeDelay() time.Duration {
	span := p.maxDelay - p.minDelay
	if span <= 0 {
		return p.minDelay
	}
	return p.minDelay + rand.N(span) //nolint:gosec // jitter, not security
}

// userAgent picks the client identity for one request.
func (p *Parser) userAgent() string {
	return p.agents[rand.IntN(len(p.agents))] //nolint:gosec // rotation, not security
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
