package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/merahputih/kafepos/internal/catalog"
	"github.com/merahputih/kafepos/internal/config"
	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/fulfillment"
	"github.com/merahputih/kafepos/internal/httpx"
	"github.com/merahputih/kafepos/internal/kafkax"
	"github.com/merahputih/kafepos/internal/ledger"
	"github.com/merahputih/kafepos/internal/notify"
	"github.com/merahputih/kafepos/internal/postgres"
	"github.com/merahputih/kafepos/internal/procurement"
	"github.com/merahputih/kafepos/internal/redisx"
	"github.com/merahputih/kafepos/internal/sales"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", cfg.ServiceName)

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

	// satu producer per topic
	pub := &events.Publisher{
		StockCredited: kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockCredited, 1024, log),
		StockDebited:  kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockDebited, 1024, log),
		KitchenStatus: kafkax.NewProducer(cfg.KafkaBrokers, events.TopicKitchenStatus, 1024, log),
		Notifications: kafkax.NewProducer(cfg.KafkaBrokers, events.TopicNotificationCreated, 1024, log),
		ServiceName:   cfg.ServiceName,
	}
	for _, p := range []*kafkax.Producer{pub.StockCredited, pub.StockDebited, pub.KitchenStatus, pub.Notifications} {
		p.Start(ctx)
	}

	hub := notify.NewHub()
	notifStore := &notify.Store{DB: db}
	notifSvc := &notify.Service{Store: notifStore, Publisher: pub, Log: log}

	materialRepo := &ledger.Repo{DB: db}
	catalogSvc := &catalog.Service{Repo: &catalog.Repo{DB: db}, Notifier: notifSvc, Log: log}
	procurementSvc := &procurement.Service{Repo: &procurement.Repo{DB: db}, Publisher: pub, Log: log}
	kitchenSvc := &fulfillment.Service{Repo: &fulfillment.Repo{DB: db}, Redis: rdb, Publisher: pub, Log: log}
	salesSvc := &sales.Service{Repo: &sales.Repo{DB: db}, Kitchen: kitchenSvc, Publisher: pub, Log: log}

	router := httpx.NewRouter()
	(&httpx.CatalogHandler{Svc: catalogSvc}).Register(router)
	(&httpx.MaterialsHandler{Repo: materialRepo}).Register(router)
	(&httpx.ProcurementHandler{Svc: procurementSvc}).Register(router)
	(&httpx.KitchenHandler{Svc: kitchenSvc}).Register(router)
	(&httpx.SalesHandler{Svc: salesSvc}).Register(router)
	(&httpx.NotificationsHandler{Store: notifStore, Hub: hub}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// group id unik per instance: topic notification.created di-broadcast ke
	// semua instance api, bukan dibagi
	fanoutGroup := cfg.ServiceName + "-fanout-" + uuid.NewString()
	fanout := kafkax.NewBroadcastConsumer(cfg.KafkaBrokers, fanoutGroup, events.TopicNotificationCreated, cfg.ConsumerWorkers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return fanout.Start(gctx, notify.FanoutHandler(hub, httpx.NotificationFrame, log))
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-gctx.Done():
		}
		log.Info("shutting down")

		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("exit with error", "error", err)
	}

	// tunggu producer selesai flush
	for _, p := range []*kafkax.Producer{pub.StockCredited, pub.StockDebited, pub.KitchenStatus, pub.Notifications} {
		p.WaitClosed()
	}
}
