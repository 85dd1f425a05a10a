// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"remoteboard/internal/domain"
)

const DefaultFeedURL = "https://jobicy.com/api/v2/remote-jobs"

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		// AllowedOrigins may call the API from another origin (a dev UI, say).
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	Feed struct {
		URL            string `yaml:"url" json:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent" json:"user_agent"`
	} `yaml:"feed" json:"feed"`

	Logos struct {
		Enabled        bool     `yaml:"enabled" json:"enabled"`
		AllowHosts     []string `yaml:"allow_hosts" json:"allow_hosts"`
		ReqPerSec      float64  `yaml:"req_per_sec" json:"req_per_sec"`
		Burst          int      `yaml:"burst" json:"burst"`
		PrewarmWorkers int      `yaml:"prewarm_workers" json:"prewarm_workers"`
	} `yaml:"logos" json:"logos"`

	Store struct {
		KeepRuns           int `yaml:"keep_runs" json:"keep_runs"`
		LogoMaxAgeDays     int `yaml:"logo_max_age_days" json:"logo_max_age_days"`
		MaintenanceMinutes int `yaml:"maintenance_minutes" json:"maintenance_minutes"`
	} `yaml:"store" json:"store"`

	UI struct {
		PreviewChars int             `yaml:"preview_chars" json:"preview_chars"`
		Categories   []domain.Option `yaml:"categories" json:"categories"`
		Levels       []domain.Option `yaml:"levels" json:"levels"`
	} `yaml:"ui" json:"ui"`

	Log struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"` // console | json
	} `yaml:"log" json:"log"`
}

// Default is the configuration written on first start.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471

	cfg.Feed.URL = DefaultFeedURL
	cfg.Feed.TimeoutSeconds = 20
	cfg.Feed.UserAgent = "RemoteBoard/1.0 (+local)"

	cfg.Logos.Enabled = true
	cfg.Logos.AllowHosts = []string{"jobicy.com", ".jobicy.com", ".googleusercontent.com"}
	cfg.Logos.ReqPerSec = 2
	cfg.Logos.Burst = 4
	cfg.Logos.PrewarmWorkers = 4

	cfg.Store.KeepRuns = 200
	cfg.Store.LogoMaxAgeDays = 30
	cfg.Store.MaintenanceMinutes = 360

	cfg.UI.PreviewChars = 180
	cfg.UI.Categories = domain.DefaultCategories()
	cfg.UI.Levels = domain.DefaultLevels()

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads path over Default, so keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
