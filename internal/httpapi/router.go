package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Pages
	ph := PageHandler{Catalog: d.Catalog, Views: d.Views, CfgVal: d.CfgVal}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Detail, // expects /jobs/{id}
	}))

	// Jobs API
	jh := JobsHandler{Catalog: d.Catalog, CfgVal: d.CfgVal}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/api/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath,
	}))
	mux.HandleFunc("/api/options", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Options,
	}))

	// Feed
	fh := FeedHandler{Catalog: d.Catalog, DB: d.DB}
	mux.HandleFunc("/feed/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Status,
	}))
	if d.DB != nil {
		mux.HandleFunc("/feed/runs", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: fh.Runs,
		}))
		dh := DBHandler{DB: d.DB, Origins: d.AllowedOrigins}
		mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: dh.Checkpoint,
		}))
	}

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Origins:     d.AllowedOrigins,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	if d.Hub != nil {
		eh := EventsHandler{Hub: d.Hub, Catalog: d.Catalog}
		mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: eh.ServeSSE,
		}))
	}

	// Logos
	if d.Logos != nil {
		lh := LogosHandler{Cache: d.Logos}
		mux.HandleFunc("/logo", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: lh.Get,
		}))
		mux.HandleFunc("/logo/", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: lh.GetByPath,
		}))
	}

	hh := HealthHandler{Catalog: d.Catalog, Hub: d.Hub, Logos: d.Logos}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
