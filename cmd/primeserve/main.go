package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"prime-pkg/cache"
	"prime-pkg/config"
	"prime-pkg/query"
	"prime-pkg/store"
)

func main() {
	cfg := config.Read()

	// シグナル通知
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := query.NewServer(cfg.Bases)

	if cfg.Cache.Enabled {
		vc, err := cache.NewVerdictCache(ctx, cache.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("failed to init verdict cache")
		}
		defer vc.Close()
		srv.SetCache(vc)
	}

	if cfg.Store.Enabled {
		vs, err := store.NewVerdictStore(ctx, store.Config{
			DBName: cfg.Store.DBName,
			User:   cfg.Store.User,
			Passwd: cfg.Store.Passwd,
			Addr:   cfg.Store.Addr,
		})
		if err != nil {
			logrus.WithError(err).Fatal("failed to init verdict store")
		}
		defer vs.Close()
		srv.SetRecorder(vs)
	}

	ln, err := query.ListenTCP(cfg.Listen)
	if err != nil {
		logrus.WithError(err).Fatal("failed to listen")
	}

	if err := srv.Serve(ctx, ln); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
	logrus.Info("shutdown")
}
