package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sebuszqo/PaymentAPI/docs"
	"github.com/sebuszqo/PaymentAPI/internal/config"
	database "github.com/sebuszqo/PaymentAPI/internal/db"
	"github.com/sebuszqo/PaymentAPI/internal/logger"
	"github.com/sebuszqo/PaymentAPI/internal/payment/application"
	"github.com/sebuszqo/PaymentAPI/internal/payment/infrastructure"
	"github.com/sebuszqo/PaymentAPI/internal/payment/interfaces"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	zapLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	if err := run(cfg, zapLog); err != nil {
		zapLog.Error("Server stopped with error", zap.Error(err))
		zapLog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := database.NewGateway(cfg.Database, zapLog)
	if err != nil {
		return err
	}
	defer gateway.Close()

	if cfg.Database.AutoMigrate {
		if err := gateway.EnsureSchema(ctx); err != nil {
			return err
		}
		zapLog.Info("Payments schema is in place")
	}

	docs.SwaggerInfo.Host = docsHost(cfg.Server)

	paymentRepo := infrastructure.NewPaymentRepository(gateway)
	paymentService := application.NewPaymentService(paymentRepo)
	paymentHandler := interfaces.NewPaymentHandler(paymentService, zapLog, respondJSON, respondError)

	server := NewServer(paymentHandler, gateway)
	server.RegisterRoutes()

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      logger.RequestLogger(zapLog, server.router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLog.Info("Server starting", zap.String("addr", httpServer.Addr))
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func docsHost(s config.ServerConfig) string {
	if s.Host == "" {
		return net.JoinHostPort("localhost", s.Port)
	}
	return s.Addr()
}
