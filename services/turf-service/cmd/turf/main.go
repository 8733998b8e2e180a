package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/pkg/auth"
	"github.com/you/turf-booking/pkg/config"
	"github.com/you/turf-booking/pkg/db"
	"github.com/you/turf-booking/pkg/mq"
	"github.com/you/turf-booking/pkg/obs"
	"github.com/you/turf-booking/services/turf-service/internal/events"
	"github.com/you/turf-booking/services/turf-service/internal/handlers"
	"github.com/you/turf-booking/services/turf-service/internal/realtime"
	"github.com/you/turf-booking/services/turf-service/internal/repository"
	"github.com/you/turf-booking/services/turf-service/internal/seed"
	"github.com/you/turf-booking/services/turf-service/internal/service"
)

const (
	serviceName = "turf-service"
	version     = "0.1.0"
)

func must[T any](v T, err error) T {
	if err != nil {
		logrus.WithError(err).Fatal("startup failed")
	}
	return v
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	obs.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := must(obs.InitTracer(ctx, serviceName, version, cfg.Env, cfg.OTLPEndpoint))

	// DB
	store := must(db.Open(ctx, cfg.DatabaseURL))
	defer store.Close()
	must(0, repository.Migrate(store.Gorm))

	users := repository.NewUserRepo(store.Gorm)
	turfRepo := repository.NewTurfRepo(store.Gorm)
	bookingRepo := repository.NewBookingRepo(store.Gorm)
	ledger := repository.NewLedger(store.Pool)

	turfs := service.NewTurfSvc(turfRepo)
	accounts := must(service.NewAuthSvc(users, auth.NewHasher()))

	// Notifier sinks: websocket watchers always, the broker when configured
	hub := realtime.NewHub(turfs)
	sinks := service.Fanout{hub}
	if cfg.RabbitURL != "" {
		pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.TurfExchange))
		defer pub.Close()
		sinks = append(sinks, events.NewPublisher(pub))
		logrus.WithField("exchange", cfg.TurfExchange).Info("publishing events to rabbitmq")
	}
	bookings := service.NewBookingSvc(ledger, bookingRepo, sinks)

	if cfg.Seed {
		must(seed.New(accounts, turfRepo, bookings).Run(ctx))
	}

	router := handlers.NewRouter(handlers.Deps{
		ServiceName:  serviceName,
		Turfs:        turfs,
		Bookings:     bookings,
		Accounts:     accounts,
		Sessions:     auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL()),
		Realtime:     realtime.NewServer(hub, bookings),
		SecureCookie: cfg.CookieSecure,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logrus.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("http shutdown")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("tracer shutdown")
	}
}
