// Package ingest implements the repository-ingestion execution pipeline.
//
// A request flows through four stages, strictly in sequence:
//
//  1. Validate the repository reference (internal/reference).
//  2. Synthesize a per-request tool-config document into the scratch area.
//  3. Run the external packer tool with a bounded lifetime.
//  4. Materialize the output artifact into the result.
//
// Each stage's failure aborts the pipeline and surfaces as one of the
// classified errors in errors.go. Pipelines for distinct requests run fully
// concurrently; the scratch directories are the only shared state, and they
// are made safe purely through per-request unique file names (random
// identifiers, no locks or counters).
package ingest
