// Package batch solves many loads against one line geometry.
//
// Loads come in as CSV rows ([ReadJobsCSV]), fan out over a bounded
// worker pool ([Runner.Run]) and come back as one [Outcome] per load in
// input order, ready for a summary table ([WriteSummaryCSV]). Workers
// share nothing but read-only parameters; a per-load failure lands in
// that load's outcome and never stops the batch.
package batch
