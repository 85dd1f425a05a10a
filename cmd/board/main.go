package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"remoteboard/internal/config"
	"remoteboard/internal/domain"
	"remoteboard/internal/events"
	"remoteboard/internal/feed"
	"remoteboard/internal/httpapi"
	"remoteboard/internal/logging"
	"remoteboard/internal/preview"
	"remoteboard/internal/scheduler"
	"remoteboard/internal/store"
	"remoteboard/internal/util"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("board stopped")
	}
}

func run() error {
	config.LoadDotEnv()

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.ApplyEnv(&cfg)
		cfg, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return cfg, config.Validate(cfg)
		}
		for _, w := range vr.Warnings {
			log.Warn().Str("component", "config").Msg(w)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	lg := logging.Component("main")

	lock := flock.New(filepath.Join(dataDir, "board.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another board is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	dbPath := filepath.Join(dataDir, "board.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	hub := events.NewHub()

	var logos *store.LogoCache
	views := preview.Builder{
		Sanitizer:    preview.NewSanitizer(),
		SnippetChars: cfg.UI.PreviewChars,
	}
	if cfg.Logos.Enabled {
		logos = &store.LogoCache{
			DB:         db.Pool,
			Client:     &http.Client{Timeout: 15 * time.Second},
			Limiter:    util.NewHostLimiter(cfg.Logos.ReqPerSec, cfg.Logos.Burst),
			AllowHosts: cfg.Logos.AllowHosts,
			MaxBytes:   store.DefaultMaxLogoBytes,
			UserAgent:  cfg.Feed.UserAgent,
		}
		views.LogoURL = preview.ProxiedLogo
	}

	client := feed.NewClient(cfg.Feed.URL, time.Duration(cfg.Feed.TimeoutSeconds)*time.Second, cfg.Feed.UserAgent)
	catalog := feed.NewCatalog(client, cfg.Feed.URL)
	catalog.Recorder = store.Recorder{DB: db.Pool}
	catalog.Hub = hub
	if logos != nil {
		workers := cfg.Logos.PrewarmWorkers
		catalog.OnLoaded = func(ctx context.Context, listings []domain.Listing) {
			feed.PrewarmLogos(ctx, logos, listings, workers)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The feed is fetched once per process; the page shows a loading banner until then.
	go func() { _ = catalog.Load(ctx) }()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Catalog:     catalog,
		Logos:       logos,
		Views:       views,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,

		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	token := os.Getenv("BOARD_SHUTDOWN_TOKEN")
	if token == "" {
		token, err = randomToken(16)
		if err != nil {
			return err
		}
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors(cfg.App.AllowedOrigins)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv, cfg.App.AllowedOrigins))

	lg.Info().
		Str("addr", "http://"+addr).
		Str("db", dbPath).
		Str("config", userCfgPath).
		Str("feed", cfg.Feed.URL).
		Str("shutdown_token", token).
		Msg("board listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// a /shutdown request ends Serve without a signal
		defer stop()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if every := cfg.Store.MaintenanceMinutes; every > 0 {
		keep := cfg.Store.KeepRuns
		maxAge := time.Duration(cfg.Store.LogoMaxAgeDays) * 24 * time.Hour
		g.Go(func() error {
			scheduler.Every(gctx, time.Duration(every)*time.Minute, "store-maintenance", func(ctx context.Context) error {
				res, err := store.Prune(ctx, db.Pool, keep, maxAge)
				if err != nil {
					return err
				}
				lg.Debug().Int64("runs", res.Runs).Int64("logos", res.Logos).Msg("store pruned")
				return nil
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	lg.Info().Msg("board stopped")
	return nil
}
