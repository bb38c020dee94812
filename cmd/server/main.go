package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/oleratodev/banking-ledger-system/internal/bank"
	"github.com/oleratodev/banking-ledger-system/internal/config"
	"github.com/oleratodev/banking-ledger-system/internal/events/kafka"
	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/logger"
	"github.com/oleratodev/banking-ledger-system/internal/persistence"
	"github.com/oleratodev/banking-ledger-system/internal/storage/memory"
	"github.com/oleratodev/banking-ledger-system/internal/storage/postgres"
	"github.com/oleratodev/banking-ledger-system/internal/storage/sqlite"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	var store interfaces.RecordStore
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("opening postgres store")
		}
		defer pg.Close()
		store = pg
	case config.DriverSQLite:
		sq, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening sqlite store")
		}
		defer sq.Close()
		store = sq
	default:
		store = memory.NewStore()
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	mapper := persistence.NewMapper(store, log)
	seq := bank.NewAccountNumberSequence(100000)
	service := bank.NewService(mapper, seq, publisher, nil, log)

	ctx := context.Background()
	if err := service.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("loading persisted state")
	}
	seedIfEmpty(ctx, service, log)

	r := gin.Default()
	srv := &server{service: service, branch: cfg.Branch}
	srv.registerRoutes(r)

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	service.SaveAll(ctx)
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}

// seedIfEmpty registers the two demo customers when the store starts out
// empty, matching a first run against a fresh database.
func seedIfEmpty(ctx context.Context, service *bank.Service, log zerolog.Logger) {
	if len(service.Customers()) > 0 {
		return
	}
	log.Info().Msg("empty store, seeding demo customers")
	if _, err := service.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234"); err != nil {
		log.Warn().Err(err).Msg("seeding customer")
	}
	if _, err := service.CreateCustomer(ctx, "Kentsenao", "Baseki", "Francistown", "5678"); err != nil {
		log.Warn().Err(err).Msg("seeding customer")
	}
}
