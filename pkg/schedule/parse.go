package schedule

import (
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tableMarkupRe = regexp.MustCompile(`(?i)<table[\s>]`)
	preBlockRe    = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
)

// A strategy attempts one extraction approach and returns whatever slots it
// is confident about; an empty result means "nothing here", never a hard
// failure.
type strategy func(doc, sourceURL string) []Slot

// Parse converts one raw timetable document into slots. Strategies run in a
// fixed priority order: structured tables first when table markup is
// present, then the text-grid heuristics over the best-effort plain text.
// The fallback fires only when the primary path yields literally zero slots,
// never on a non-empty partial result.
func Parse(doc, sourceURL string) []Slot {
	var strategies []strategy
	if tableMarkupRe.MatchString(doc) {
		strategies = append(strategies, extractAllTables)
	}
	strategies = append(strategies, func(doc, sourceURL string) []Slot {
		return extractFromText(extractPlainText(doc), sourceURL)
	})

	for _, strat := range strategies {
		if slots := strat(doc, sourceURL); len(slots) > 0 {
			return slots
		}
	}
	return nil
}

// extractAllTables runs the table extractor over every table in the
// document and unions the results in document order. A document that cannot
// be parsed as markup at all yields nothing, which sends the orchestrator to
// the fallback path.
func extractAllTables(doc, sourceURL string) []Slot {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		slog.Warn("table parse failed, falling back", "source", sourceURL, "error", err)
		return nil
	}

	var all []Slot
	d.Find("table").Each(func(i int, table *goquery.Selection) {
		part := extractFromTable(table, sourceURL)
		slog.Debug("table extracted", "index", i, "slots", len(part))
		all = append(all, part...)
	})
	return all
}

// extractPlainText produces the best-effort plain text of a document:
// the content of the first preformatted block when one exists, else the
// whole document, entity-decoded with CR and NBSP normalized away.
func extractPlainText(doc string) string {
	text := doc
	if m := preBlockRe.FindStringSubmatch(doc); m != nil {
		text = m[1]
	}
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, " ", " ")
}
