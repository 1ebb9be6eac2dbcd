package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/internal/events"
	"github.com/shopfleet/order-service/internal/handler"
	"github.com/shopfleet/order-service/internal/httpserver"
	"github.com/shopfleet/order-service/internal/notifier"
	"github.com/shopfleet/order-service/internal/repository"
	"github.com/shopfleet/order-service/internal/service"
	"github.com/shopfleet/order-service/internal/users"
	"github.com/shopfleet/order-service/pkg/config"
	"github.com/shopfleet/order-service/pkg/errorhandling"
	"github.com/shopfleet/order-service/pkg/observability"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("users_service_url", cfg.UsersServiceURL))

	ctx := context.Background()

	meter, shutdownMetrics, err := observability.SetupMetricsSDK(ctx, cfg.OTELEndpoint)
	if err != nil {
		logger.Fatal("Failed to set up metrics", zap.Error(err))
	}

	errHandler, err := errorhandling.New(logger, meter)
	if err != nil {
		logger.Fatal("Failed to create error handler", zap.Error(err))
	}

	// Initialize components
	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		logger.Fatal("Failed to create DynamoDB client", zap.Error(err))
	}
	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)

	kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	defer kafkaPublisher.Close()

	mailNotifier, err := notifier.NewSMTPNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create SMTP notifier", zap.Error(err))
	}

	usersClient := users.NewClient(cfg.UsersServiceURL, logger)

	orderService := service.NewOrderService(orderRepo, usersClient, mailNotifier, kafkaPublisher, cfg.AdminEmail, logger)
	orderHandler := handler.NewOrderHandler(orderService, errHandler, logger)
	router := handler.NewRouter(orderHandler, errHandler, logger, kafkaPublisher)

	server := httpserver.New(":"+cfg.Port, router, logger)
	if _, err := server.Start(); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
	}

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	userDeletedConsumer := events.NewUserDeletedConsumer(cfg.KafkaBrokers, orderRepo, logger)
	go func() {
		// Faults outside any request context reach the same boundary
		// handler; there is no response to produce, only steps 1-5.
		defer func() {
			if recovered := recover(); recovered != nil {
				errHandler.Handle(consumerCtx, recovered)
			}
		}()
		if err := userDeletedConsumer.Start(consumerCtx); err != nil {
			errHandler.Handle(consumerCtx, err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stopConsumer()
	if err := userDeletedConsumer.Close(); err != nil {
		logger.Error("Consumer shutdown failed", zap.Error(err))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.Error("Metrics shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped")
}
