// Package benchmark holds throughput and allocation benchmarks for the
// logging engines, including head-to-head runs against zap, slog,
// logrus and zerolog under identical sink conditions. It lives in its
// own module so the comparison frameworks never become dependencies of
// the library itself.
package benchmark
