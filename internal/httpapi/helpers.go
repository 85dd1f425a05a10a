package httpapi

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"remoteboard/internal/config"
	"remoteboard/internal/domain"
)

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func currentConfig(v *atomic.Value) config.Config {
	if v != nil {
		if c, ok := v.Load().(config.Config); ok {
			return c
		}
	}
	return config.Default()
}

// filterOptions returns the configured select options, falling back to the built-in lists.
func filterOptions(v *atomic.Value) (categories, levels []domain.Option) {
	cfg := currentConfig(v)
	categories, levels = cfg.UI.Categories, cfg.UI.Levels
	if len(categories) == 0 {
		categories = domain.DefaultCategories()
	}
	if len(levels) == 0 {
		levels = domain.DefaultLevels()
	}
	return categories, levels
}

// IsLocal reports whether the request came from the loopback interface.
// Every browser on this machine is local, so state-changing routes use Trusted.
func IsLocal(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr can sometimes be just a host
		host = r.RemoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// SameOrigin reports whether r carries no Origin header, or one naming this
// server or one of allowed.
func SameOrigin(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if originAllowed(origin, allowed) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		// includes the opaque "null" origin
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// Trusted gates routes that change server state: a loopback caller that is not
// a page from some other site.
func Trusted(r *http.Request, allowed []string) bool {
	return IsLocal(r) && SameOrigin(r, allowed)
}

func originAllowed(origin string, allowed []string) bool {
	origin = strings.TrimRight(origin, "/")
	for _, a := range allowed {
		if strings.EqualFold(origin, a) {
			return true
		}
	}
	return false
}
