package httpapi

import (
	"database/sql"
	"sync/atomic"

	"remoteboard/internal/config"
	"remoteboard/internal/events"
	"remoteboard/internal/feed"
	"remoteboard/internal/preview"
	"remoteboard/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub     *events.Hub
	Catalog *feed.Catalog
	Logos   *store.LogoCache // nil disables /logo
	Views   preview.Builder

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Origins other than the server's own that may call state-changing routes.
	AllowedOrigins []string
}
