package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/tradeyard/tradeyard-auction-service/internal/app/background"
	"github.com/tradeyard/tradeyard-auction-service/internal/config"
	httpdelivery "github.com/tradeyard/tradeyard-auction-service/internal/delivery/http"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/handlers"
	publisher "github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/kafka"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/logger"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/metrics"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/migrate"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/repository"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/profile"
	bidusecase "github.com/tradeyard/tradeyard-auction-service/internal/usecase/bid"
	disputeusecase "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dispute"
	escrowusecase "github.com/tradeyard/tradeyard-auction-service/internal/usecase/escrow"
	settlementusecase "github.com/tradeyard/tradeyard-auction-service/internal/usecase/settlement"
)

func main() {
	godotenv.Load()

	cfg := config.MustLoad()
	logger.Setup(cfg.LogConfig)

	db := postgres.MustInitDB(cfg)
	if cfg.AuctionDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.AuctionDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	kafkaPublisher, err := publisher.NewKafkaPublisher(publisher.KafkaConfig{
		Brokers:      []string{cfg.KafkaService.Host + ":" + cfg.KafkaService.Port},
		AuctionTopic: cfg.KafkaService.AuctionTopic,
		DisputeTopic: cfg.KafkaService.DisputeTopic,
		Username:     cfg.KafkaService.Username,
		Password:     cfg.KafkaService.Password,
		Mechanism:    cfg.KafkaService.Mechanism,
		TLSEnabled:   cfg.KafkaService.TLSEnabled,
	})
	if err != nil {
		log.Fatalf("failed to init kafka publisher: %v", err)
	}

	profileClient := profile.NewHTTPProfileClient(
		fmt.Sprintf("http://%s:%s", cfg.ProfileService.Host, cfg.ProfileService.Port),
	)

	minIncrement, err := decimal.NewFromString(cfg.AuctionRules.MinBidIncrement)
	if err != nil {
		log.Fatalf("invalid min_bid_increment %q: %v", cfg.AuctionRules.MinBidIncrement, err)
	}

	auctionMetrics := metrics.NewAuctionMetrics()

	itemRepo := repository.NewDefaultItemRepository(db)
	bidRepo := repository.NewDefaultBidRepository(db)
	txRepo := repository.NewDefaultTransactionRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)
	auditRepo := repository.NewDefaultAuditRepository(db)

	bidUC := bidusecase.NewDefaultBidUsecase(bidRepo, itemRepo, auditRepo, profileClient, kafkaPublisher, auctionMetrics, minIncrement)
	settlementUC := settlementusecase.NewDefaultSettlementUsecase(itemRepo, bidRepo, txRepo, kafkaPublisher, auctionMetrics)
	escrowUC := escrowusecase.NewDefaultEscrowUsecase(escrowRepo, txRepo, kafkaPublisher, auctionMetrics)
	disputeUC := disputeusecase.NewDefaultDisputeUsecase(disputeRepo, txRepo, escrowRepo, kafkaPublisher, auctionMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := background.NewBackgroundTasks(settlementUC, disputeUC, cfg.AuctionRules)
	tasks.StartAll(ctx)

	server := httpdelivery.NewServer(
		cfg.HTTPServer.Host+":"+cfg.HTTPServer.Port,
		cfg.AuthConfig.JWTSecret,
		handlers.NewBidHandler(bidUC),
		handlers.NewEscrowHandler(escrowUC),
		handlers.NewDisputeHandler(disputeUC),
		handlers.NewAdminHandler(settlementUC, bidUC, auditRepo),
	)

	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPServer.Host+":"+cfg.HTTPServer.Port)
		if err := server.Start(); err != nil {
			slog.Error("http server stopped", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err.Error())
	}
}
