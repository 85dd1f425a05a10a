package filter

import (
	"net/url"
	"strings"

	"remoteboard/internal/domain"
)

// Visible returns the listings that satisfy every active criterion, in input order.
// The input slice is never modified.
func Visible(listings []domain.Listing, c domain.Criteria) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if Match(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func Match(l domain.Listing, c domain.Criteria) bool {
	return matchesSearch(l, c) &&
		matchesCategory(l, c) &&
		matchesLocation(l, c) &&
		matchesLevel(l, c)
}

func matchesSearch(l domain.Listing, c domain.Criteria) bool {
	return strings.Contains(strings.ToLower(l.Title), strings.ToLower(c.Search))
}

func matchesCategory(l domain.Listing, c domain.Criteria) bool {
	if c.Category == domain.All {
		return true
	}
	return strings.ToLower(l.PrimaryType()) == strings.ToLower(c.Category)
}

func matchesLocation(l domain.Listing, c domain.Criteria) bool {
	if c.Location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Geo), strings.ToLower(c.Location))
}

// level is compared case-sensitively, unlike the other three fields
func matchesLevel(l domain.Listing, c domain.Criteria) bool {
	return c.Level == domain.All || l.JobLevel == c.Level
}

// FromQuery reads criteria from search, category, location and level parameters.
// Missing or empty category/level select everything.
func FromQuery(q url.Values) domain.Criteria {
	c := domain.DefaultCriteria()
	c.Search = q.Get("search")
	c.Location = q.Get("location")
	if v := q.Get("category"); v != "" {
		c.Category = v
	}
	if v := q.Get("level"); v != "" {
		c.Level = v
	}
	return c
}

// Query is the inverse of FromQuery; default fields are omitted.
func Query(c domain.Criteria) url.Values {
	q := url.Values{}
	if c.Search != "" {
		q.Set("search", c.Search)
	}
	if c.Category != "" && c.Category != domain.All {
		q.Set("category", c.Category)
	}
	if c.Location != "" {
		q.Set("location", c.Location)
	}
	if c.Level != "" && c.Level != domain.All {
		q.Set("level", c.Level)
	}
	return q
}
