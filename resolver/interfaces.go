package resolver

import (
	"context"
	"net/http"

	"github.com/9seconds/chickadee/addresses"
)

// Provider fetches enrichment data for a single address.
//
// Implementations should return *ResolutionError if they cannot get
// any response (connection failed, timeout, non-2xx status) and
// *RecordDecodeError if a response is not a valid record. Columns is
// a hint: providers which have no way to limit returned fields can
// ignore it.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, addr addresses.Address, columns ColumnSelection) (Record, error)
}

// Logger is a side channel for skipped addresses and records.
type Logger interface {
	LookupError(addr addresses.Address, provider string, err error)
	DecodeError(addr addresses.Address, provider string, err error)
	OutputError(err error)
}

// HTTPClient is an interface for a client which performs HTTP
// requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type noopLogger struct{}

func (noopLogger) LookupError(_ addresses.Address, _ string, _ error) {}
func (noopLogger) DecodeError(_ addresses.Address, _ string, _ error) {}
func (noopLogger) OutputError(_ error)                                {}
