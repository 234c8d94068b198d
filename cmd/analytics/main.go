package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/workmetrics/hr-analytics-go/internal/config"
	"github.com/workmetrics/hr-analytics-go/internal/domain/analytics"
	"github.com/workmetrics/hr-analytics-go/internal/domain/employee"
	"github.com/workmetrics/hr-analytics-go/internal/domain/ingest"
	"github.com/workmetrics/hr-analytics-go/internal/pkg/database"
	"github.com/workmetrics/hr-analytics-go/internal/pkg/validator"
	"github.com/workmetrics/hr-analytics-go/internal/repository/memory"
	"github.com/workmetrics/hr-analytics-go/internal/repository/postgresql"
	"github.com/workmetrics/hr-analytics-go/internal/repository/sqlite"
	analyticsService "github.com/workmetrics/hr-analytics-go/internal/service/analytics"
	ingestService "github.com/workmetrics/hr-analytics-go/internal/service/ingest"
)

const (
	appName    = "hr-analytics"
	appVersion = "1.0.0"
)

// runDocument is the single JSON artifact one pipeline run emits.
type runDocument struct {
	RunID         string              `json:"run_id"`
	App           string              `json:"app"`
	Version       string              `json:"version"`
	ReferenceDate string              `json:"reference_date"`
	Load          ingest.LoadStats    `json:"load"`
	Clean         *ingest.CleanReport `json:"clean"`
	Catalog       *analytics.Catalog  `json:"catalog"`
}

func main() {
	inputFlag := flag.String("input", "", "employee CSV path, - for stdin (overrides INPUT_PATH)")
	outputFlag := flag.String("output", "", "run document path, - for stdout (overrides OUTPUT_PATH)")
	refFlag := flag.String("reference-date", "", "reference date as YYYY-MM-DD (overrides REFERENCE_DATE, default today)")
	storeFlag := flag.String("store", "", "store backend: memory, sqlite or postgres (overrides STORE_KIND)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *inputFlag, *outputFlag, *refFlag, *storeFlag)

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Pipeline run failed", "error", err)
		os.Exit(1)
	}
}

func applyOverrides(cfg *config.Config, input, output, ref, store string) {
	if input != "" {
		cfg.Pipeline.InputPath = input
	}
	if output != "" {
		cfg.Pipeline.OutputPath = output
	}
	if ref != "" {
		cfg.Pipeline.ReferenceDate = ref
	}
	if store != "" {
		cfg.Store.Kind = store
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ref, err := referenceDate(cfg.Pipeline.ReferenceDate)
	if err != nil {
		return err
	}

	store, repo, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Kind, err)
	}
	defer cleanup()

	input, closeInput, err := openInput(cfg.Pipeline.InputPath)
	if err != nil {
		return err
	}
	defer closeInput()

	started := time.Now()
	loader := ingestService.NewLoader()
	loaded, err := loader.Load(ctx, input)
	if err != nil {
		return err
	}
	logger.Info("Load stage finished",
		"rows_read", loaded.Stats.RowsRead,
		"rows_kept", loaded.Stats.RowsKept,
		"rows_skipped", loaded.Stats.RowsSkipped,
		"duration", time.Since(started).String(),
	)

	started = time.Now()
	cleaner := ingestService.NewCleaner()
	emps, report, err := cleaner.Clean(ctx, loaded.Records, ref)
	if err != nil {
		return err
	}
	logger.Info("Clean stage finished",
		"run_id", report.RunID,
		"cleaned", report.Cleaned,
		"flagged", report.Flagged,
		"dropped", report.Dropped,
		"duplicates", report.Duplicates,
		"duration", time.Since(started).String(),
	)

	started = time.Now()
	if err := store.Load(ctx, emps); err != nil {
		return err
	}
	logger.Info("Store load finished", "records", len(emps), "duration", time.Since(started).String())

	started = time.Now()
	service := analyticsService.NewAnalyticsService(repo, store)
	catalog, err := service.RunCatalog(ctx, ref)
	if err != nil {
		return err
	}
	logger.Info("Report stage finished", "result_sets", len(catalog.Results), "duration", time.Since(started).String())

	doc := &runDocument{
		RunID:         report.RunID,
		App:           appName,
		Version:       appVersion,
		ReferenceDate: ref.Format("2006-01-02"),
		Load:          loaded.Stats,
		Clean:         report,
		Catalog:       catalog,
	}
	return writeDocument(cfg.Pipeline.OutputPath, doc)
}

// referenceDate resolves the shared "now" of the run; every derived field
// and tenure computation uses this single instant.
func referenceDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	ref, ok := validator.IsISODate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid reference date %q, want YYYY-MM-DD", raw)
	}
	return ref, nil
}

func openStore(ctx context.Context, cfg *config.Config) (employee.Store, analytics.Repository, func(), error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		store := memory.NewStore()
		return store, memory.NewAnalyticsRepository(store), func() {}, nil

	case config.StoreSQLite:
		store, closeFn, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return store, sqlite.NewAnalyticsRepository(store), closeFn, nil

	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, nil, nil, err
		}
		return postgresql.NewEmployeeStore(db.Pool), postgresql.NewAnalyticsRepository(db.Pool), db.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unsupported store kind: %s", cfg.Store.Kind)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no input: pass -input or set INPUT_PATH")
	}
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeDocument(path string, doc *runDocument) error {
	out := os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write run document: %w", err)
	}
	return nil
}
