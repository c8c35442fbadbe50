package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"giltcli/pkg/contracts/domain"
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func WriteCSV(filePath string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFailureReport writes the batch's failure set as a CSV for operator
// review: one line per failed row with its index, error code, message and
// the original cells.
func WriteFailureReport(filePath string, batch *domain.CollectedBatch) error {
	records := make([][]string, 0, len(batch.Failures))

	for _, f := range batch.Failures {
		records = append(records, []string{
			strconv.Itoa(f.Row),
			domain.KindOf(f.Err).String(),
			f.Err.Error(),
			strings.Join(f.Cells, "|"),
		})
	}

	err := WriteCSV(filePath, WriteOptions{
		Headers:   []string{"row", "error_code", "error", "cells"},
		Records:   records,
		BOMPrefix: true,
	})
	if err != nil {
		return err
	}

	slog.Info("wrote failure report",
		slog.String("path", filePath),
		slog.Int("failures", len(batch.Failures)))

	return nil
}
