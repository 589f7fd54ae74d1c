package parser

import (
	"strings"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const (
	maxDescriptionRunes = 500
	ellipsis            = "..."
	detailsSeparator    = "; "
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	titleSel          = cascadia.MustCompile("span#productTitle")
	priceWholeSel     = cascadia.MustCompile("span.a-price-whole")
	priceOffscreenSel = cascadia.MustCompile("span.a-offscreen")
	ratingSel         = cascadia.MustCompile("span.a-icon-alt")
	featureBulletsSel = cascadia.MustCompile("div#feature-bullets")
	techSpecSel       = cascadia.MustCompile("table#productDetails_techSpec_section_1")
	detailTableSel    = cascadia.MustCompile("table#productDetails_detailBullets_sections1")
	detailBulletsSel  = cascadia.MustCompile("div#detailBullets_feature_div")
	boldLabelSel      = cascadia.MustCompile("span.a-text-bold")
	rowSel            = cascadia.MustCompile("tr")
	headerCellSel     = cascadia.MustCompile("th")
	dataCellSel       = cascadia.MustCompile("td")
	landingImageSel   = cascadia.MustCompile("img#landingImage")
	dynamicImageSel   = cascadia.MustCompile("img.a-dynamic-image")
)

// strategy yields a value for one field, or false to fall through to the next strategy.
type strategy func(doc *goquery.Document) (string, bool)

//nolint:gochecknoglobals // fallback chains, read-only
var (
	titleStrategies       = []strategy{firstText(titleSel)}
	priceStrategies       = []strategy{firstText(priceWholeSel), firstText(priceOffscreenSel)}
	ratingStrategies      = []strategy{firstText(ratingSel)}
	descriptionStrategies = []strategy{firstText(featureBulletsSel)}
	imageStrategies       = []strategy{firstAttr(landingImageSel, "src"), firstAttr(dynamicImageSel, "src")}
)

// resolve runs strategies in order and returns the first value found.
func resolve(doc *goquery.Document, strategies ...strategy) models.Field {
	for _, try := range strategies {
		if value, ok := try(doc); ok {
			return models.Found(value)
		}
	}
	return models.Missing
}

// firstText takes the stripped text of the first element matching m.
// A matched element with no text still counts as found.
func firstText(m goquery.Matcher) strategy {
	return func(doc *goquery.Document) (string, bool) {
		sel := doc.FindMatcher(m).First()
		if sel.Length() == 0 {
			return "", false
		}
		return strippedText(sel), true
	}
}

// firstAttr takes a non-empty attribute of the first element matching m.
func firstAttr(m goquery.Matcher, attr string) strategy {
	return func(doc *goquery.Document) (string, bool) {
		value, ok := doc.FindMatcher(m).First().Attr(attr)
		return value, ok && value != ""
	}
}

// truncate shortens long text to limit runes followed by an ellipsis.
func truncate(f models.Field, limit int) models.Field {
	if !f.Found {
		return f
	}
	runes := []rune(f.Value)
	if len(runes) <= limit {
		return f
	}
	return models.Found(string(runes[:limit]) + ellipsis)
}

// details keeps specification pairs in first-insertion order; later writes overwrite values.
type details struct {
	keys   []string
	values map[string]string
}

func newDetails() *details {
	return &details{values: make(map[string]string)}
}

func (d *details) set(key, value string) {
	if key == "" || value == "" {
		return
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *details) field() models.Field {
	if len(d.keys) == 0 {
		return models.Missing
	}
	pairs := make([]string, 0, len(d.keys))
	for _, key := range d.keys {
		pairs = append(pairs, key+": "+d.values[key])
	}
	return models.Found(strings.Join(pairs, detailsSeparator))
}

// extractDetails merges the tech-spec table, the detail-bullets table and the bolded label list.
func extractDetails(doc *goquery.Document) models.Field {
	merged := newDetails()

	collectTableRows(doc.FindMatcher(techSpecSel).First(), merged)
	collectTableRows(doc.FindMatcher(detailTableSel).First(), merged)
	collectLabelList(doc.FindMatcher(detailBulletsSel).First(), merged)

	return merged.field()
}

func collectTableRows(table *goquery.Selection, into *details) {
	table.FindMatcher(rowSel).Each(func(_ int, row *goquery.Selection) {
		key := strippedText(row.FindMatcher(headerCellSel).First())
		value := strippedText(row.FindMatcher(dataCellSel).First())
		into.set(key, value)
	})
}

func collectLabelList(list *goquery.Selection, into *details) {
	list.FindMatcher(boldLabelSel).Each(func(_ int, label *goquery.Selection) {
		key := strings.ReplaceAll(strippedText(label), ":", "")
		value := nodeText(findNext(label, "span"))
		into.set(key, value)
	})
}
