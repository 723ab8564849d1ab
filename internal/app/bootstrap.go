package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/beatlights/internal/beatmap"
	"github.com/coreman2200/beatlights/internal/config"
	"github.com/coreman2200/beatlights/internal/layout"
	"github.com/coreman2200/beatlights/internal/lightshow"
	"github.com/coreman2200/beatlights/internal/render"
	"github.com/coreman2200/beatlights/internal/ws"
)

type Core struct {
	Cfg    *config.Config
	Layout layout.Layout
	Eng    *render.Engine
	State  *ws.State
	Log    zerolog.Logger
}

// RevisionOverride returns the configured filter revision, or nil when
// the revision should follow each file's version.
func RevisionOverride(cfg *config.Config) (*lightshow.Revision, error) {
	if cfg.Revision == "" || cfg.Revision == "auto" {
		return nil, nil
	}
	r, err := lightshow.ParseRevision(cfg.Revision)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeOptions turns the configured revision into beatmap options.
func DecodeOptions(cfg *config.Config) ([]beatmap.Option, error) {
	r, err := RevisionOverride(cfg)
	if err != nil || r == nil {
		return nil, err
	}
	return []beatmap.Option{beatmap.WithRevision(*r)}, nil
}

// NewLayout builds the fixture layout from config.
func NewLayout(cfg *config.Config) layout.Layout {
	return layout.New(cfg.Layout.DefaultSize, cfg.Layout.Groups)
}

// InitCore wires layout, engine and offset server from cfg. The engine's
// driver is the server's frame broadcaster.
func InitCore(cfg *config.Config, log zerolog.Logger) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := NewLayout(cfg)
	eng, err := render.NewEngine(l, nil, cfg.Workers)
	if err != nil {
		return nil, err
	}
	state := ws.NewState(eng, log.With().Str("component", "ws").Logger())
	if cfg.Server.WriteTimeoutMs > 0 {
		state.WriteTimeout = time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond
	}
	r, err := RevisionOverride(cfg)
	if err != nil {
		return nil, err
	}
	if r != nil {
		state.SetRevision(*r)
	}
	return &Core{Cfg: cfg, Layout: l, Eng: eng, State: state, Log: log}, nil
}

// Serve runs the HTTP server on ln until ctx is cancelled, then shuts it
// down gracefully.
func (c *Core) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     c.State.Routes(),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Log.Info().Str("addr", ln.Addr().String()).Int("workers", c.Eng.Workers).Msg("HTTP server starting")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
