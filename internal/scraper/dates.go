package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"museum-map-api/internal/models"
)

var monthDay = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)

// ParseDateRange reads up to two 「N月N日」 occurrences from text and returns
// a start and end date in the clock's current year. A single occurrence
// yields a one day range. Listings spanning a year boundary come out wrong;
// the source page never states years, so the current year is all we have.
func ParseDateRange(text string, clock clockwork.Clock) (models.Date, models.Date, error) {
	matches := monthDay.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return models.Date{}, models.Date{}, fmt.Errorf("scraper: no date in %q", text)
	}

	year := clock.Now().Year()
	start, err := dateFromMatch(year, matches[0])
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	end := start
	if len(matches) > 1 {
		end, err = dateFromMatch(year, matches[1])
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
	}
	return start, end, nil
}

func dateFromMatch(year int, match []string) (models.Date, error) {
	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return models.Date{}, fmt.Errorf("scraper: invalid date %q", match[0])
	}
	return models.NewDate(year, time.Month(month), day), nil
}
