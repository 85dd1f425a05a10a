package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"remoteboard/internal/feed"
	"remoteboard/internal/store"
)

type FeedHandler struct {
	Catalog *feed.Catalog
	DB      *sql.DB
}

func (h FeedHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Status())
}

// Runs lists recorded load attempts, newest first.
func (h FeedHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := store.RecentFetches(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
