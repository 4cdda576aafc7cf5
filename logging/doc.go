// Package logging provides the process-wide structured logger: a thin,
// concurrency-safe wrapper over rs/zerolog that writes the same single-line
// JSON record to a per-run log file and to the console.
//
// Key features
//   - One record per call with "level", "timestamp" (ISO-8601, UTC) and
//     "event" (the message), plus any typed fields
//   - Per-run log file named MM_DD_YYYY_HH_MM_SS.log under the log directory
//   - Named loggers via Logger(name), configured once per name
//   - Graceful shutdown that waits for in-flight logs (bounded timeout)
//   - Error history enrichment: for any Err/AnErr, the logger includes
//     the full error chain (outermost -> root), the root cause string, a
//     joined human-readable history, the operations chain (when using
//     Station-Manager DetailedError), the root operation if available, and
//     the source file and line for errors that record them.
//
// Typical usage
//
//	svc := logging.NewService(nil)
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//
//	log := svc.Logger("retriever")
//	log.InfoWith().Str("query", q).Int("hits", n).Msg("search complete")
//	log.ErrorWith().Err(err).Msg("search failed")
package logging
