package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"remoteboard/internal/domain"
	"remoteboard/internal/feed"
	"remoteboard/internal/filter"
	"remoteboard/internal/preview"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	indexTmpl  = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/index.html"))
	detailTmpl = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/detail.html"))
)

type PageHandler struct {
	Catalog *feed.Catalog
	Views   preview.Builder
	CfgVal  *atomic.Value
}

type indexPage struct {
	PageTitle   string
	Criteria    domain.Criteria
	Categories  []domain.Option
	Levels      []domain.Option
	Status      feed.Status
	Cards       []preview.Card
	QueryString string
}

type detailPage struct {
	PageTitle   string
	Detail      preview.Detail
	QueryString string
}

func (h PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	c := filter.FromQuery(r.URL.Query())
	visible := filter.Visible(h.Catalog.Listings(), c)
	cats, levels := filterOptions(h.CfgVal)

	render(w, r, indexTmpl, indexPage{
		PageTitle:   "Remote Jobs",
		Criteria:    c,
		Categories:  cats,
		Levels:      levels,
		Status:      h.Catalog.Status(),
		Cards:       h.Views.Cards(visible),
		QueryString: queryString(c),
	})
}

// Detail serves /jobs/{id}; the query string carries the filters back to the grid.
func (h PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/jobs/"))
	l, ok := h.Catalog.Find(id)
	if id == "" || !ok {
		http.NotFound(w, r)
		return
	}

	d := h.Views.Detail(l)
	render(w, r, detailTmpl, detailPage{
		PageTitle:   d.Title,
		Detail:      d,
		QueryString: queryString(filter.FromQuery(r.URL.Query())),
	})
}

func queryString(c domain.Criteria) string {
	q := filter.Query(c).Encode()
	if q == "" {
		return ""
	}
	return "?" + q
}

func render(w http.ResponseWriter, r *http.Request, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Error().Str("component", "http").Str("request_id", RequestIDFrom(r.Context())).Err(err).Msg("render")
		WriteError(w, r, http.StatusInternalServerError, "render_failed", "could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Referrer-Policy", "no-referrer")
	_, _ = buf.WriteTo(w)
}
