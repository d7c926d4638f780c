package main

import (
	"context"
	"flag"
	"log"
	"os"

	"pix-limit-service/internal/config"
	"pix-limit-service/internal/db"
	"pix-limit-service/internal/importer"
	customerrepo "pix-limit-service/internal/repository/customer"
	customersvc "pix-limit-service/internal/service/customer"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	var path string
	flag.StringVar(&path, "file", "", "path to the customers CSV file")
	flag.Parse()
	if path == "" {
		logger.Fatal("missing -file flag")
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := customerrepo.NewPostgres(pool, logger)
	service := customersvc.New(repo)

	imported, skipped, err := importer.NewCSVImporter(f, service).Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d rows: %v", imported, err)
	}
	logger.Printf("imported %d customers, skipped %d existing", imported, skipped)
}
