// Command seed loads a YAML fixture into the SQLite host database.
package main

import (
	"context"
	"flag"
	"os"

	"creditreport/internal/cli"
	"creditreport/internal/host"
	"creditreport/internal/log"
	"creditreport/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()

	fixtures := flag.String("fixtures", cfg.FixturesPath, "YAML fixture to load")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "SQLite database path")
	flag.Parse()

	logger := cli.SetupLogger(cfg, log.ComponentStorage)
	ctx := context.Background()

	fx, err := host.LoadFixture(*fixtures)
	if err != nil {
		logger.Error("Failed to load fixture", log.FieldError, err, "path", *fixtures)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(*dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", *dbPath)
		os.Exit(1)
	}
	defer repo.Close()

	res, err := repo.Seed(ctx, fx)
	if err != nil {
		logger.Error("Seed failed", log.FieldError, err, log.FieldOperation, log.OpSeed)
		repo.Close()
		os.Exit(1)
	}

	total, err := repo.CountTrades(ctx)
	if err != nil {
		logger.Error("Counting trades failed", log.FieldError, err)
		repo.Close()
		os.Exit(1)
	}

	logger.Info("Seed complete",
		log.FieldOperation, log.OpSeed,
		"db_path", *dbPath,
		"groups", res.Groups,
		"accounts", res.Accounts,
		"trades", res.Trades,
		"skipped", res.Skipped,
		"total_trades", total)
}
