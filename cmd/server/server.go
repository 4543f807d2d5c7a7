package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/XJIeI5/flatcalc/internal/config"
	"github.com/XJIeI5/flatcalc/internal/server"
	"github.com/XJIeI5/flatcalc/internal/storage"
)

func main() {
	configPtr := flag.String("config", "", "path to yaml config")
	hostPtr := flag.String("host", "", "host of server")
	portPtr := flag.Int("port", 0, "port of server")
	dbPtr := flag.String("db", "", "sqlite history file, \"-\" disables history")
	flag.Parse()

	cfg := config.Load(*configPtr)
	if *hostPtr != "" {
		cfg.Host = *hostPtr
	}
	if *portPtr > 0 {
		cfg.Port = *portPtr
	}
	switch *dbPtr {
	case "":
	case "-":
		cfg.DBPath = ""
	default:
		cfg.DBPath = *dbPtr
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Logger:           logger,
		RateLimit:        cfg.RateLimit,
		HistoryQueueSize: cfg.History.QueueSize,
	}
	if cfg.DBPath != "" {
		store, err := storage.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
	} else {
		logger.Info("history disabled")
	}

	s := server.New(opts)
	httpServer := server.GetServer(cfg.Host, cfg.Port, s)
	lis, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return err
	}
	logger.Info("run calculator server", "host", cfg.Host, "port", cfg.Port, "db", cfg.DBPath)
	return s.Serve(ctx, httpServer, lis)
}
