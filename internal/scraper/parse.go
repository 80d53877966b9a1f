package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"museum-map-api/internal/models"
)

// ParseEvents reads the event table out of a listing page. The table mixes
// layouts: most rows carry date, title and description cells, some carry a
// leading rowspan cell, and single-cell rows continue the previous event's
// description. Relative event links are resolved against pageURL.
func ParseEvents(r io.Reader, pageURL string, clock clockwork.Clock) ([]models.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("scraper: parse page: %w", err)
	}

	var events []models.Event
	var current *models.Event

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if _, ok := cells.First().Attr("rowspan"); ok && cells.Length() > 1 {
			cells = cells.Slice(1, cells.Length())
		}

		switch {
		case cells.Length() >= 2:
			dateText := CleanText(cellText(cells.Eq(0)))
			start, end, err := ParseDateRange(dateText, clock)
			if err != nil {
				return
			}

			titleCell := cells.Eq(1)
			title := CleanText(cellText(titleCell.Find("strong")))
			if title == "" {
				title = CleanText(cellText(titleCell))
			}
			if title == "" {
				return
			}

			descCell := titleCell
			if cells.Length() >= 3 {
				descCell = cells.Eq(2)
			}
			desc := descriptionText(descCell, title)

			events = append(events, models.Event{
				Title:       title,
				StartDate:   start,
				EndDate:     end,
				Description: DedupeSentences(desc),
				EventURL:    resolveHref(pageURL, cellHref(titleCell)),
			})
			current = &events[len(events)-1]

		case cells.Length() == 1 && current != nil:
			extra := descriptionText(cells.Eq(0), current.Title)
			if extra == "" {
				return
			}
			if containsNormalized(current.Description, extra) {
				return
			}
			current.Description = DedupeSentences(current.Description + " " + extra)
		}
	})

	return events, nil
}

// descriptionText extracts a cell's prose: images and links removed, the
// event title stripped when the cell repeats it.
func descriptionText(cell *goquery.Selection, title string) string {
	pruned := cell.Clone()
	pruned.Find("img, a").Remove()
	text := CleanText(cellText(pruned))
	text = strings.TrimSpace(strings.TrimPrefix(text, title))
	return text
}

// containsNormalized reports whether haystack already carries needle once
// both are reduced to comparison form.
func containsNormalized(haystack, needle string) bool {
	n := normalizeForComparison(needle)
	if n == "" {
		return true
	}
	return strings.Contains(normalizeForComparison(haystack), n)
}

func cellText(sel *goquery.Selection) string {
	html, err := sel.Html()
	if err != nil {
		return sel.Text()
	}
	return html
}

func cellHref(cell *goquery.Selection) string {
	href, _ := cell.Find("a").First().Attr("href")
	return strings.TrimSpace(href)
}

// resolveHref makes a scraped link absolute. Unparseable inputs pass
// through untouched.
func resolveHref(pageURL, href string) string {
	if href == "" || pageURL == "" {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
