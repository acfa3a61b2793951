package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/merahputih/kafepos/internal/alerter"
	"github.com/merahputih/kafepos/internal/config"
	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/kafkax"
	"github.com/merahputih/kafepos/internal/ledger"
	"github.com/merahputih/kafepos/internal/notify"
	"github.com/merahputih/kafepos/internal/postgres"
	"github.com/merahputih/kafepos/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	serviceName := cfg.ServiceName + "-alerter"
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", serviceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	pNotif := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicNotificationCreated, 1024, log)
	pNotif.Start(ctx)
	pub := &events.Publisher{Notifications: pNotif, ServiceName: serviceName}

	svc := &alerter.Service{
		Materials:   &ledger.Repo{DB: db},
		Notifier:    &notify.Service{Store: &notify.Store{DB: db}, Publisher: pub, Log: log},
		Redis:       rdb,
		ServiceName: serviceName,
		Log:         log,
	}

	group := "stock-alerter"
	debits := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicStockDebited, cfg.ConsumerWorkers, log)
	credits := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicStockCredited, cfg.ConsumerWorkers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return debits.Start(gctx, svc.HandleStockMoved) })
	g.Go(func() error { return credits.Start(gctx, svc.HandleStockMoved) })
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-gctx.Done():
		}
		log.Info("shutting down")
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("exit with error", "error", err)
	}
	pNotif.WaitClosed()
}
