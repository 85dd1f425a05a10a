package preview

import (
	"html/template"
	"net/url"
	"strings"

	"remoteboard/internal/domain"
	"remoteboard/internal/util"
)

// Card is what the grid shows for one listing.
type Card struct {
	ID       string `json:"id"`
	Href     string `json:"href"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	LogoURL  string `json:"logoUrl,omitempty"`
	Snippet  string `json:"snippet"`
}

// Detail is the full view of one listing.
type Detail struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Excerpt   template.HTML `json:"excerptHtml"`
	Company   string        `json:"company"`
	Level     string        `json:"level"`
	Location  string        `json:"location"`
	Types     string        `json:"types"`
	Published string        `json:"published"`
	ApplyURL  string        `json:"applyUrl,omitempty"`
}

// Builder turns listings into view models.
type Builder struct {
	Sanitizer    *Sanitizer
	SnippetChars int
	// LogoURL maps an upstream logo URL to the one the page should load.
	// Nil keeps the upstream URL.
	LogoURL func(raw string) string
}

func (b Builder) Card(l domain.Listing) Card {
	logo := ""
	if util.IsHTTPURL(l.CompanyLogoURL) {
		logo = l.CompanyLogoURL
		if b.LogoURL != nil {
			logo = b.LogoURL(logo)
		}
	}
	return Card{
		ID:       l.ID.String(),
		Href:     DetailPath(l.ID.String()),
		Title:    util.Or(l.Title, "No Title"),
		Company:  util.Or(l.CompanyName, "Unknown Company"),
		Location: util.Or(l.Geo, "Remote"),
		LogoURL:  logo,
		Snippet:  Snippet(l.Description, b.SnippetChars),
	}
}

func (b Builder) Cards(ls []domain.Listing) []Card {
	out := make([]Card, 0, len(ls))
	for _, l := range ls {
		out = append(out, b.Card(l))
	}
	return out
}

func (b Builder) Detail(l domain.Listing) Detail {
	s := b.Sanitizer
	if s == nil {
		s = NewSanitizer()
	}

	types := "N/A"
	if len(l.JobType) > 0 {
		types = strings.Join(l.JobType, ", ")
	}

	apply := ""
	if util.IsHTTPURL(l.ApplyURL) {
		apply = l.ApplyURL
	}

	return Detail{
		ID:        l.ID.String(),
		Title:     util.Or(l.Title, "No Title"),
		Excerpt:   s.HTML(l.Excerpt),
		Company:   util.Or(l.CompanyName, "N/A"),
		Level:     util.Or(l.JobLevel, "Fresher"),
		Location:  util.Or(l.Geo, "Remote"),
		Types:     types,
		Published: util.Or(l.PubDate, "N/A"),
		ApplyURL:  apply,
	}
}

// DetailPath is the detail page of the listing with id; the id is one escaped
// path segment.
func DetailPath(id string) string {
	return "/jobs/" + url.PathEscape(id)
}

// ProxiedLogo points logo requests at the local /logo endpoint.
func ProxiedLogo(raw string) string {
	return "/logo?u=" + url.QueryEscape(raw)
}
