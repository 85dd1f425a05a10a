package config

import (
	"fmt"
	"strings"

	"remoteboard/internal/domain"
)

// Option is re-exported so config files and handlers share one type.
type Option = domain.Option

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus hard errors and
// advisory warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	trimOptions := func(opts []Option) []Option {
		seen := map[string]bool{}
		var ys []Option
		for _, o := range opts {
			o.Value = strings.TrimSpace(o.Value)
			o.Label = strings.TrimSpace(o.Label)
			if o.Value == "" || seen[o.Value] {
				continue
			}
			seen[o.Value] = true
			if o.Label == "" {
				o.Label = o.Value
			}
			ys = append(ys, o)
		}
		return ys
	}

	out.Feed.URL = strings.TrimSpace(out.Feed.URL)
	out.Logos.AllowHosts = trimList(out.Logos.AllowHosts)
	out.App.AllowedOrigins = trimList(out.App.AllowedOrigins)
	for i, o := range out.App.AllowedOrigins {
		out.App.AllowedOrigins[i] = strings.TrimRight(o, "/")
	}
	out.UI.Categories = trimOptions(out.UI.Categories)
	out.UI.Levels = trimOptions(out.UI.Levels)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(err.Error(), "\n- ")[1:] {
			res.addErr("%s", line)
		}
	}

	// ---- warnings ----

	if out.Feed.TimeoutSeconds > 120 {
		res.addWarn("feed.timeout_seconds is very high (%d); the page stays empty until the feed answers.", out.Feed.TimeoutSeconds)
	}
	if out.Logos.Enabled && len(out.Logos.AllowHosts) == 0 {
		res.addWarn("logos.enabled is true but logos.allow_hosts is empty; no logo will be served.")
	}
	if out.Logos.PrewarmWorkers > 16 {
		res.addWarn("logos.prewarm_workers is %d; logo hosts may throttle this.", out.Logos.PrewarmWorkers)
	}
	if !hasAll(out.UI.Categories) {
		res.addWarn("ui.categories has no %q entry; the category filter cannot be cleared.", domain.All)
	}
	if !hasAll(out.UI.Levels) {
		res.addWarn("ui.levels has no %q entry; the level filter cannot be cleared.", domain.All)
	}

	return out, res
}

func hasAll(opts []Option) bool {
	for _, o := range opts {
		if o.Value == domain.All {
			return true
		}
	}
	return false
}
