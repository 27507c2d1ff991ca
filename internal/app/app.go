package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/epicview/internal/config"
	"github.com/five82/epicview/internal/epic"
	"github.com/five82/epicview/internal/prefs"
	"github.com/five82/epicview/internal/state"
	"github.com/five82/epicview/internal/ui"
	"github.com/five82/epicview/internal/web"
)

// Options configure the epicview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/epicview/prefs.toml
	Overrides  config.Overrides
	Serve      bool // serve the HTML page instead of running the TUI
}

// Run boots epicview until the context is cancelled or the user quits. Only
// configuration and startup failures are returned; fetch failures are view
// state.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(opts.Overrides)

	logger, closer, err := newLogger(opts.Serve, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	client, err := epic.NewClient(epic.Options{
		Base:    cfg.APIBase,
		Origin:  cfg.Origin,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("init epic client: %w", err)
	}

	store := state.NewStore(policyFor(cfg))
	logger.WithFields(logrus.Fields{
		"base":   cfg.APIBase,
		"origin": cfg.Origin,
		"policy": policyName(cfg),
		"serve":  opts.Serve,
	}).Info("epicview starting")

	if opts.Serve {
		return serve(ctx, cfg, store, client, logger)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	// The TUI owns the terminal; browser helpers must not write to it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	return ui.Run(ui.Options{
		Context:      ctx,
		Store:        store,
		Backend:      client,
		Logger:       logger,
		LogFile:      cfg.LogFile,
		PrefsPath:    prefsPath,
		ThemeName:    userPrefs.Theme,
		RefreshEvery: cfg.RefreshEvery,
		OpenURL:      browser.OpenURL,
	})
}

// serve runs the HTML server and the auto-refresh loop until ctx is done.
func serve(ctx context.Context, cfg config.Config, store *state.Store, client *epic.Client, logger *logrus.Logger) error {
	proxy, err := proxyTarget(cfg)
	if err != nil {
		return err
	}

	loader := state.NewLoader(store, client, logger)
	srv := web.NewServer(web.Options{
		Addr:   cfg.Listen,
		Base:   cfg.APIBase,
		Loader: loader,
		Proxy:  proxy,
		Logger: logger,
	})
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return StartAutoRefresh(gctx, loader, cfg.RefreshEvery)
	})
	g.Go(func() error {
		<-gctx.Done()
		if err := srv.Stop(); err != nil {
			return fmt.Errorf("stop server: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// proxyTarget returns the backend origin to proxy when image and API paths
// are relative to this server, or nil when BASE is absolute.
func proxyTarget(cfg config.Config) (*url.URL, error) {
	if !cfg.SameOrigin() && !strings.HasPrefix(cfg.APIBase, "/") {
		return nil, nil
	}
	origin := strings.TrimSpace(cfg.Origin)
	if origin == "" {
		return nil, nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse origin: %q is not an absolute URL", origin)
	}
	return u, nil
}

func policyFor(cfg config.Config) state.Policy {
	if cfg.DiscardStale {
		return state.DiscardStale
	}
	return state.LastWriteWins
}

func policyName(cfg config.Config) string {
	if cfg.DiscardStale {
		return "discard-stale"
	}
	return "last-write-wins"
}
