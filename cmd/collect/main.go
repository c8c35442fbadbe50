// Command collect runs the ingestion pipeline over a local gilt price
// document: rows are extracted from the workbook or CSV, each row is
// parsed and completed, the resulting bonds are stored as a dated parquet
// file and the failures as a CSV report. Fetching the document and
// shipping the output anywhere belong to the orchestration around this
// tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"giltcli/internal/config"
	"giltcli/internal/exporter"
	"giltcli/internal/pipeline"
	"giltcli/internal/source"
	"giltcli/internal/yield"
	"giltcli/pkg/contracts"
	"giltcli/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input document (.xlsx or .csv)")
	sourceName := flag.String("source", "DMO", "source identifier for the batch")
	dateStr := flag.String("date", "", "settlement date (YYYY-MM-DD), defaults to today")
	configFile := flag.String("config", "", "optional YAML config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	settlementDate := time.Now()
	if *dateStr != "" {
		settlementDate, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Error("invalid settlement date", "error", err)
			os.Exit(1)
		}
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(*in), ".csv") {
		rows, err = source.CSVRows(*in)
	} else {
		rows, err = source.WorkbookRows(*in)
	}
	if err != nil {
		logger.Error("failed to read source document", "error", err)
		os.Exit(1)
	}

	solver := yield.Config{
		Tolerance:     cfg.Solver.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
	}

	collector := pipeline.NewCollector(cfg.Layout, solver, logger)
	collector.SetWorkers(cfg.Batch.Workers)

	batch, err := collector.Collect(context.Background(), *sourceName, settlementDate, rows)
	if err != nil {
		if domain.IsKind(err, domain.KindDataUnavailable) {
			logger.Error("no usable data in source document",
				slog.String("source", *sourceName),
				slog.Int("rows", len(rows)))
		} else {
			logger.Error("failed to collect batch", "error", err)
		}
		os.Exit(1)
	}

	outPath, err := exporter.StoreBatch(batch, cfg.Paths.DataDir)
	if err != nil {
		logger.Error("failed to store batch", "error", err)
		os.Exit(1)
	}

	if len(batch.Failures) > 0 {
		reportPath := filepath.Join(cfg.Paths.ReportsDir, batch.Source+"-failures.csv")
		if err := exporter.WriteFailureReport(reportPath, batch); err != nil {
			logger.Error("failed to write failure report", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Stored %d bonds to %s (%d failures)\n", len(batch.Bonds), outPath, len(batch.Failures))
}
