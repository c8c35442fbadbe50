// Package exporter persists collection results to the local filesystem:
// completed bonds as a dated parquet file, the failure set as a CSV
// report. Storage location policy beyond the base directory, and any
// remote upload, belong to the orchestration layer around this module.
package exporter
