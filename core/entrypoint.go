package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"

	"github.com/encodeous/lsr/state"
	"github.com/encodeous/lsr/transport"
	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the console logger, fanned out to cfg.LogPath when set. The returned function closes
// the log file.
func NewLogger(cfg state.LocalCfg, logLevel slog.Level) (*slog.Logger, func(), error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			CustomPrefix: strconv.Itoa(int(cfg.Id)),
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	closeLog := func() {}
	if cfg.LogPath != "" {
		err := os.MkdirAll(path.Dir(cfg.LogPath), 0700)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
		closeLog = func() {
			_ = f.Close()
		}
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeLog, nil
}

func setupDebugging(e *state.Env) {
	if e.DebugAddr == "" {
		return
	}
	srv := &http.Server{Addr: e.DebugAddr, Handler: http.DefaultServeMux}
	context.AfterFunc(e.Context, func() {
		_ = srv.Close()
	})
	go func() {
		e.Log.Info("serving debug endpoints", "addr", e.DebugAddr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Log.Error("debug server stopped", "error", err)
		}
	}()
}

// Start runs a router until it receives SIGINT or SIGTERM, or its transport fails
func Start(cfg state.LocalCfg, topo state.Topology, logLevel slog.Level) error {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(context.Canceled)

	logger, closeLog, err := NewLogger(cfg, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	env := &state.Env{
		LocalCfg: cfg,
		Topology: topo,
		Context:  ctx,
		Cancel:   cancel,
		Log:      logger,
	}

	peerAddr, err := netip.ParseAddr(cfg.PeerAddr)
	if err != nil {
		return err
	}
	tr, err := transport.ListenUDP(ctx, netip.AddrPortFrom(peerAddr, cfg.Port))
	if err != nil {
		return err
	}
	defer tr.Close()

	r, err := NewRouter(env, tr)
	if err != nil {
		return err
	}

	setupDebugging(env)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			cancel(errors.New("received shutdown signal"))
		case <-ctx.Done():
		}
	}()

	env.Log.Info("Router initialized. To gracefully exit, send SIGINT or Ctrl+C.")
	return r.Run()
}
