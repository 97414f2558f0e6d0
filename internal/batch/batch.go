// Package batch collects slots from many timetable sources concurrently and
// merges them into one schedule.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vmicha/rozvrh/internal/catalog"
	"github.com/vmicha/rozvrh/pkg/schedule"
)

// DefaultConcurrency is the number of simultaneous fetches.
const DefaultConcurrency = 3

// Fetcher retrieves the raw document behind a URL.
type Fetcher interface {
	Get(ctx context.Context, target string) (string, error)
}

// Collector fetches and parses a set of group pages with a bounded worker
// pool. A source that fails to fetch or parses to nothing contributes zero
// slots; it never aborts the batch.
type Collector struct {
	fetcher     Fetcher
	concurrency int
}

// NewCollector returns a collector over the given fetcher. A concurrency
// below 1 falls back to the default.
func NewCollector(fetcher Fetcher, concurrency int) *Collector {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Collector{fetcher: fetcher, concurrency: concurrency}
}

// Collect fetches every group page, parses each into slots, and merges the
// union, labelling each slot with its group's label.
func (c *Collector) Collect(ctx context.Context, groups []catalog.Group) []schedule.MergedRow {
	urlToLabel := make(map[string]string, len(groups))
	for _, g := range groups {
		urlToLabel[g.URL] = g.Label
	}

	var (
		mu    sync.Mutex
		slots []schedule.Slot
	)

	jobs := make(chan catalog.Group)
	var wg sync.WaitGroup

	workers := c.concurrency
	if workers > len(groups) {
		workers = len(groups)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for g := range jobs {
				doc, err := c.fetcher.Get(ctx, g.URL)
				if err != nil {
					slog.Warn("skipping source", "worker", id, "group", g.Label, "error", err)
					continue
				}
				parsed := schedule.Parse(doc, g.URL)
				slog.Info("parsed source", "worker", id, "group", g.Label, "slots", len(parsed))

				mu.Lock()
				slots = append(slots, parsed...)
				mu.Unlock()
			}
		}(i)
	}

	for _, g := range groups {
		jobs <- g
	}
	close(jobs)
	wg.Wait()

	return schedule.MergeTagged(slots, func(s schedule.Slot) string {
		if label, ok := urlToLabel[s.SourceURL]; ok {
			return label
		}
		return s.SourceURL
	})
}
