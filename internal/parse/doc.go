// Package parse converts raw tabular rows from a gilt price source into
// provisional bond records.
//
// Parsing is tolerant at the field level: a bad cell records a diagnostic
// but the remaining fields are still attempted, so a best-effort bond is
// always available for debugging. A row fails as a whole when at least one
// diagnostic was recorded; the first diagnostic is the row's error.
//
// Two row categories are filtered out before field validation and count
// as neither successes nor failures: rows whose first cell lacks the GB
// ISIN prefix (headers, footers, totals) and index-linked instruments,
// which this pipeline does not price.
package parse
