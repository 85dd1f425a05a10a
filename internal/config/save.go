package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	for i, o := range cfg.App.AllowedOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") || (u.Path != "" && u.Path != "/") {
			errs = append(errs, fmt.Sprintf("app.allowed_origins[%d] must be scheme://host[:port]", i))
		}
	}
	if u, err := url.Parse(cfg.Feed.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, "feed.url must be an absolute http(s) URL")
	}
	if cfg.Feed.TimeoutSeconds <= 0 {
		errs = append(errs, "feed.timeout_seconds must be > 0")
	}
	if cfg.Store.KeepRuns < 0 || cfg.Store.LogoMaxAgeDays < 0 || cfg.Store.MaintenanceMinutes < 0 {
		errs = append(errs, "store values cannot be negative")
	}
	if cfg.UI.PreviewChars <= 0 {
		errs = append(errs, "ui.preview_chars must be > 0")
	}

	checkOptions := func(name string, opts []Option) {
		for i, o := range opts {
			if strings.TrimSpace(o.Value) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d].value is required", name, i))
			}
		}
	}
	checkOptions("ui.categories", cfg.UI.Categories)
	checkOptions("ui.levels", cfg.UI.Levels)

	if cfg.Logos.Enabled {
		if cfg.Logos.ReqPerSec <= 0 {
			errs = append(errs, "logos.req_per_sec must be > 0 when logos.enabled=true")
		}
		for i, h := range cfg.Logos.AllowHosts {
			if strings.TrimSpace(h) == "" {
				errs = append(errs, fmt.Sprintf("logos.allow_hosts[%d] cannot be empty", i))
			}
		}
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, "log.format must be console or json")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
