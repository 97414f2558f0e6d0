package batch

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vmicha/rozvrh/internal/catalog"
	"github.com/vmicha/rozvrh/pkg/schedule"
)

const gridDoc = `Pon 07:00        08:00
      ALG201 t05a


`

// stubFetcher serves canned documents; URLs without one fail.
type stubFetcher struct {
	docs map[string]string
}

func (f *stubFetcher) Get(_ context.Context, target string) (string, error) {
	doc, ok := f.docs[target]
	if !ok {
		return "", errors.New("no such page")
	}
	return doc, nil
}

func TestCollectMergesAcrossGroups(t *testing.T) {
	fetcher := &stubFetcher{docs: map[string]string{
		"u/a": gridDoc,
		"u/b": gridDoc,
	}}
	// Concurrency 1 keeps the group label order deterministic.
	c := NewCollector(fetcher, 1)

	rows := c.Collect(context.Background(), []catalog.Group{
		{Label: "1bc_API_1", URL: "u/a", Group: "1"},
		{Label: "1bc_API_2", URL: "u/b", Group: "2"},
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(rows))
	}
	got := rows[0]
	if got.Title != "ALG201" || got.Room != "t05a" || got.Day != schedule.Monday {
		t.Errorf("row = %+v; want Pon ALG201 t05a", got)
	}
	if want := []string{"1bc_API_1", "1bc_API_2"}; !reflect.DeepEqual(got.Groups, want) {
		t.Errorf("groups = %v; want %v", got.Groups, want)
	}
}

func TestCollectToleratesFailedSource(t *testing.T) {
	fetcher := &stubFetcher{docs: map[string]string{"u/good": gridDoc}}
	c := NewCollector(fetcher, 1)

	rows := c.Collect(context.Background(), []catalog.Group{
		{Label: "1bc_API_1", URL: "u/dead", Group: "1"},
		{Label: "1bc_API_2", URL: "u/good", Group: "2"},
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(rows))
	}
	if want := []string{"1bc_API_2"}; !reflect.DeepEqual(rows[0].Groups, want) {
		t.Errorf("groups = %v; want %v", rows[0].Groups, want)
	}
}

func TestCollectConcurrentWorkers(t *testing.T) {
	docs := map[string]string{}
	var groups []catalog.Group
	for _, label := range []string{"1bc_API_1", "1bc_API_2", "1bc_API_3", "1bc_API_4"} {
		url := "u/" + label
		docs[url] = gridDoc
		groups = append(groups, catalog.Group{Label: label, URL: url, Group: label[strings.LastIndex(label, "_")+1:]})
	}
	c := NewCollector(&stubFetcher{docs: docs}, DefaultConcurrency)

	rows := c.Collect(context.Background(), groups)

	if len(rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(rows))
	}
	if len(rows[0].Groups) != len(groups) {
		t.Errorf("got %d group labels; want %d", len(rows[0].Groups), len(groups))
	}
}

func TestCollectNoGroups(t *testing.T) {
	c := NewCollector(&stubFetcher{}, 0)
	if rows := c.Collect(context.Background(), nil); len(rows) != 0 {
		t.Errorf("rows = %v; want none", rows)
	}
}

func TestNewCollectorConcurrencyFloor(t *testing.T) {
	c := NewCollector(&stubFetcher{}, -5)
	if c.concurrency != DefaultConcurrency {
		t.Errorf("concurrency = %d; want %d", c.concurrency, DefaultConcurrency)
	}
}
