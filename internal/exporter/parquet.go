package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"giltcli/pkg/contracts/domain"
)

// WriteBonds serializes completed bonds to w as a parquet row group
func WriteBonds(w io.Writer, bonds []domain.Bond) error {
	writer := parquet.NewGenericWriter[domain.Bond](w)

	if _, err := writer.Write(bonds); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write records: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// BatchPath returns the dated output path for a batch under baseDir:
// baseDir/yyyy/mm/dd/<source>.parquet
func BatchPath(baseDir string, batch *domain.CollectedBatch) string {
	date := batch.SettlementDate.UTC()
	return filepath.Join(
		baseDir,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", date.Month()),
		fmt.Sprintf("%02d", date.Day()),
		batch.Source+".parquet",
	)
}

// StoreBatch writes the batch's bonds to the dated parquet path under
// baseDir, creating directories as needed, and returns the path written.
func StoreBatch(batch *domain.CollectedBatch, baseDir string) (string, error) {
	outPath := BatchPath(baseDir, batch)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteBonds(file, batch.Bonds); err != nil {
		return "", err
	}

	slog.Info("stored batch",
		slog.String("path", outPath),
		slog.Int("bonds", len(batch.Bonds)))

	return outPath, nil
}
