package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"remoteboard/internal/store"
)

type LogosHandler struct {
	Cache *store.LogoCache
}

// Get serves /logo?u=<upstream logo url> from the cache, fetching on a miss.
func (h LogosHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := strings.TrimSpace(r.URL.Query().Get("u"))
	if u == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_url", "missing u")
		return
	}

	lg, err := h.Cache.Fetch(r.Context(), u)
	switch {
	case errors.Is(err, store.ErrHostNotAllowed):
		WriteError(w, r, http.StatusForbidden, "host_not_allowed", "host not allowed")
		return
	case err != nil:
		log.Warn().Str("component", "logo").Str("url", u).Err(err).Msg("fetch failed")
		WriteError(w, r, http.StatusBadGateway, "logo_unavailable", "logo unavailable")
		return
	}
	writeLogo(w, lg)
}

// GetByPath serves /logo/{key} for logos already in the cache.
func (h LogosHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/logo/"))
	if key == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_key", "missing key")
		return
	}

	lg, err := h.Cache.Get(r.Context(), key)
	if errors.Is(err, store.ErrLogoNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeLogo(w, lg)
}

func writeLogo(w http.ResponseWriter, lg store.Logo) {
	ct := lg.ContentType
	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(lg.Bytes)
}
