package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pix-limit-service/internal/config"
	"pix-limit-service/internal/db"
	"pix-limit-service/internal/httpserver"
	customerrepo "pix-limit-service/internal/repository/customer"
	customersvc "pix-limit-service/internal/service/customer"
	transactionsvc "pix-limit-service/internal/service/transaction"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	customerService := customersvc.New(customerRepo)
	transactionService := transactionsvc.New(customerRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc:    customerService,
		TransactionSvc: transactionService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
