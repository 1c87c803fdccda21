package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/home-library/lending/config"
	"github.com/Astemirdum/home-library/lending/internal/handler"
	"github.com/Astemirdum/home-library/lending/internal/identity"
	"github.com/Astemirdum/home-library/lending/internal/queue"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/Astemirdum/home-library/lending/internal/server"
	"github.com/Astemirdum/home-library/lending/internal/service"
	"github.com/Astemirdum/home-library/lending/migrations"
	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/Astemirdum/home-library/pkg/isbn"
	"github.com/Astemirdum/home-library/pkg/kafka"
	"github.com/Astemirdum/home-library/pkg/logger"
	"github.com/Astemirdum/home-library/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "lending")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var events service.Publisher = queue.Nop{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("producer close", zap.Error(err))
			}
		}()
		events = queue.NewEnqueuer(producer, kafka.LoanTopic)
	} else {
		log.Info("kafka disabled, loan events are dropped")
	}

	catalog := isbn.New(cfg.ISBN, log)
	svc := service.NewService(repo, catalog, events, time.Now, log)

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatal("auth.NewVerifier", zap.Error(err))
	}
	resolver := identity.NewResolver(verifier, svc, log)

	h := handler.New(svc, resolver, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
