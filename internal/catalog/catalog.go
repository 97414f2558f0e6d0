// Package catalog discovers which timetable pages exist by parsing the
// index page's anchor list.
package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the index page the group pages hang off.
const DefaultBaseURL = "https://rozvrhy.fei.stuba.sk/"

// Group is one class-section timetable page.
type Group struct {
	Label string // e.g. "1bc_API_1"
	URL   string
	Group string // the trailing group number, e.g. "1"
}

// Catalog maps year key ("1bc", "2i", ...) to program code ("API", ...) to
// the ordered group list.
type Catalog map[string]map[string][]Group

// hrefRe recognizes ".../1bc_API_1.html" style links, absolute or relative.
var hrefRe = regexp.MustCompile(`(?i)(?:^|/)(([1-5](?:bc|i))_([A-Za-z0-9]+)_(\d+))\.html$`)

// linkNoise filters anchors that clearly point at elective or lab listings
// rather than group timetables.
var linkNoise = []string{"voľit", "volit", "cvičen", "cvicen"}

var (
	yearKeyRe  = regexp.MustCompile(`^(\d+)\s*([a-z]+)`)
	absoluteRe = regexp.MustCompile(`(?i)^https?://`)
)

// Parse builds a catalog from the index page HTML. Relative hrefs are
// absolutized against baseURL; duplicate URLs are dropped; groups are
// ordered by their numeric suffix.
func Parse(indexHTML, baseURL string) (Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(indexHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing index page: %w", err)
	}

	cat := Catalog{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}

		hay := strings.ToLower(a.Text() + " " + href)
		for _, noise := range linkNoise {
			if strings.Contains(hay, noise) {
				return
			}
		}

		m := hrefRe.FindStringSubmatch(href)
		if m == nil {
			m = hrefRe.FindStringSubmatch(a.Text())
		}
		if m == nil {
			return
		}

		year := strings.ToLower(m[2])
		program := strings.ToUpper(m[3])
		abs := absolutize(href, baseURL)

		if cat[year] == nil {
			cat[year] = map[string][]Group{}
		}
		for _, g := range cat[year][program] {
			if g.URL == abs {
				return
			}
		}
		cat[year][program] = append(cat[year][program], Group{
			Label: m[1],
			URL:   abs,
			Group: m[4],
		})
	})

	for _, programs := range cat {
		for _, groups := range programs {
			sort.SliceStable(groups, func(i, j int) bool {
				a, _ := strconv.Atoi(groups[i].Group)
				b, _ := strconv.Atoi(groups[j].Group)
				return a < b
			})
		}
	}

	return cat, nil
}

// PrettyYearLabel renders a year key for display: "1bc" -> "1. BC",
// "2i" -> "2. Ing.".
func PrettyYearLabel(year string) string {
	m := yearKeyRe.FindStringSubmatch(strings.ToLower(year))
	if m == nil {
		return year
	}
	switch m[2] {
	case "bc":
		return m[1] + ". BC"
	case "i":
		return m[1] + ". Ing."
	}
	return m[1] + ". " + strings.ToUpper(m[2])
}

func absolutize(href, baseURL string) string {
	if absoluteRe.MatchString(href) {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return baseURL + href
	}
	return base.ResolveReference(ref).String()
}
