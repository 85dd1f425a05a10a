package httpapi

import (
	"net/http"
	"strings"
	"sync/atomic"

	"remoteboard/internal/domain"
	"remoteboard/internal/feed"
	"remoteboard/internal/filter"
)

type JobsHandler struct {
	Catalog *feed.Catalog
	CfgVal  *atomic.Value
}

type jobsResponse struct {
	Criteria domain.Criteria  `json:"criteria"`
	Total    int              `json:"total"`
	Count    int              `json:"count"`
	State    string           `json:"state"`
	Jobs     []domain.Listing `json:"jobs"`
}

// List returns the visible set for the criteria in the query string.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.Catalog.Listings()
	c := filter.FromQuery(r.URL.Query())
	visible := filter.Visible(all, c)

	writeJSON(w, http.StatusOK, jobsResponse{
		Criteria: c,
		Total:    len(all),
		Count:    len(visible),
		State:    h.Catalog.Status().State,
		Jobs:     visible,
	})
}

func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/jobs/"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_id", "missing job id")
		return
	}
	l, ok := h.Catalog.Find(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no job with id "+id)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h JobsHandler) Options(w http.ResponseWriter, r *http.Request) {
	cats, levels := filterOptions(h.CfgVal)
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": cats,
		"levels":     levels,
	})
}
