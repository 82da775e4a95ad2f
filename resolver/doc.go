// Package resolver turns addresses into enrichment records.
//
// A resolver asks a provider about each address sequentially, in the
// order of input, and collects records into a result set. Transport
// failures and undecodable responses are reported to a logger and do
// not produce records; in strict mode a transport failure of the very
// first lookup aborts the whole run.
//
// Records are reduced to a selection of columns from a fixed catalog
// by a projector before they are emitted.
//
// This package also has an HTTP client which providers should use: it
// waits on a rate limiter before each request, protects a target with
// circuit breaker and treats non-2xx responses as errors.
package resolver
