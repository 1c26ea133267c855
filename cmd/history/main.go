package main

import (
	"consult-lab/export"
	"consult-lab/repositories"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// HistoryConfig only needs the storage settings, the gateway is never contacted.
type HistoryConfig struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/consultations"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

// run returns instead of exiting so the database is always closed.
func run(args []string, out io.Writer) (int, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "Number of consultations to list, 0 for all")
	rawID := fs.String("id", "", "Print one consultation as JSON")
	if err := fs.Parse(args); err != nil {
		return exitConfig, err
	}

	var id uuid.UUID
	if *rawID != "" {
		parsed, err := uuid.Parse(*rawID)
		if err != nil {
			return exitConfig, fmt.Errorf("invalid consultation id %q: %w", *rawID, err)
		}
		id = parsed
	}

	_ = godotenv.Load()
	var config HistoryConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// Read-only, listing never writes to the history.
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		logger.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()

	repository := repositories.NewConsultationRepository(db, logger)

	if id != uuid.Nil {
		record, err := repository.Get(id)
		if err != nil {
			return exitRuntime, err
		}
		if err := export.WriteRecord(out, record); err != nil {
			return exitRuntime, err
		}
		return exitOK, nil
	}

	records, err := repository.List(*limit)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to list consultations: %w", err)
	}
	export.RenderHistory(out, records)
	return exitOK, nil
}
