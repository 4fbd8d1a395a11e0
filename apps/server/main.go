package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"holdem-session/apps/server/internal/config"
	"holdem-session/apps/server/internal/gateway"
	"holdem-session/apps/server/internal/lobby"
	"holdem-session/internal/logging"
)

var flagconf string // -conf path

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, e.g. -conf config.yaml")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "holdem-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flagconf)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Named("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", cfg.Server.TCPAddr)
	if err != nil {
		log.Error("bind failed", zap.String("addr", cfg.Server.TCPAddr), zap.Error(err))
		return fmt.Errorf("listen %s: %w", cfg.Server.TCPAddr, err)
	}

	lby := lobby.New(cfg.GameConfig(), logger)
	gw, err := gateway.New(lby, logger)
	if err != nil {
		return err
	}

	var httpSrv *http.Server
	var httpLis net.Listener
	if cfg.Server.WSAddr != "" {
		httpLis, err = net.Listen("tcp", cfg.Server.WSAddr)
		if err != nil {
			_ = lis.Close()
			log.Error("bind failed", zap.String("addr", cfg.Server.WSAddr), zap.Error(err))
			return fmt.Errorf("listen %s: %w", cfg.Server.WSAddr, err)
		}
		httpSrv = &http.Server{Handler: gw.Handler(), ReadHeaderTimeout: 5 * time.Second}
	}

	gameCfg := cfg.GameConfig()
	log.Info("starting",
		zap.String("tcp_addr", lis.Addr().String()),
		zap.String("ws_addr", cfg.Server.WSAddr),
		zap.Int("max_players", gameCfg.MaxPlayers),
		zap.Uint64("small_blind", gameCfg.SmallBlind),
		zap.Uint64("big_blind", gameCfg.BigBlind))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return gw.Serve(ctx, lis)
	})
	if httpSrv != nil {
		eg.Go(func() error {
			if err := httpSrv.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	err = eg.Wait()
	log.Info("shutting down", zap.Int("connections", gw.Count()), zap.Int("sessions", len(lby.List())))
	gw.Close()
	lby.Close()
	return err
}
