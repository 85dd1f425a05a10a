package httpapi

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"remoteboard/internal/events"
	"remoteboard/internal/feed"
	"remoteboard/internal/store"
)

type HealthHandler struct {
	Catalog *feed.Catalog
	Hub     *events.Hub      // optional
	Logos   *store.LogoCache // optional
}

// Health reports ok even when the feed failed; an empty board is a valid state.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"ok":   true,
		"feed": h.Catalog.Status().State,
	}
	if h.Hub != nil {
		body["sse_clients"] = h.Hub.Clients()
	}
	if h.Logos != nil {
		logos := map[string]any{}
		if n, err := h.Logos.Count(r.Context()); err != nil {
			log.Warn().Str("component", "http").Err(err).Msg("logo count")
		} else {
			logos["cached"] = n
		}
		if h.Logos.Limiter != nil {
			logos["hosts"] = h.Logos.Limiter.Hosts()
		}
		body["logos"] = logos
	}
	writeJSON(w, http.StatusOK, body)
}
