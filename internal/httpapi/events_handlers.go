package httpapi

import (
	"fmt"
	"net/http"

	"remoteboard/internal/events"
	"remoteboard/internal/feed"
)

type EventsHandler struct {
	Hub     *events.Hub
	Catalog *feed.Catalog // optional
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// subscribe before reading the status so a load finishing in between is not missed
	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	reqID := RequestIDFrom(r.Context())
	writeEvent(w, events.MakeEvent(reqID, events.TypePing, nil))
	if msg := h.settled(reqID); msg != "" {
		writeEvent(w, msg)
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, msg)
			flusher.Flush()
		}
	}
}

// settled replays the load outcome for clients that connect after it happened.
func (h EventsHandler) settled(reqID string) string {
	if h.Catalog == nil {
		return ""
	}
	st := h.Catalog.Status()
	switch st.State {
	case feed.StateReady:
		return events.MakeEvent(reqID, events.TypeFeedLoaded, map[string]any{"count": st.Count})
	case feed.StateFailed:
		return events.MakeEvent(reqID, events.TypeFeedFailed, map[string]any{"error": st.LastError})
	}
	return ""
}

func writeEvent(w http.ResponseWriter, msg string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
}
