package resolver

import (
	"context"
	"errors"

	"github.com/9seconds/chickadee/addresses"
)

// Opts is a set of resolver options.
type Opts struct {
	// Columns is a requested column selection. Nil means that nothing
	// was requested and the whole catalog is effective.
	Columns []string

	// Logger receives diagnostics about skipped addresses. Nothing is
	// reported if it is nil.
	Logger Logger

	// Strict makes a transport failure of the first lookup fatal.
	Strict bool
}

// Resolver resolves addresses one by one with a provider.
type Resolver struct {
	provider Provider
	columns  ColumnSelection
	logger   Logger
	strict   bool
	stats    *UsageStats
}

// Columns returns an effective column selection.
func (r *Resolver) Columns() ColumnSelection {
	return r.columns
}

// Stats returns provider usage statistics.
func (r *Resolver) Stats() *UsageStats {
	return r.stats
}

// Resolve asks a provider about each address sequentially. Addresses
// which cannot be resolved are reported to logger and contribute no
// record, so a result set can be shorter than addrs.
//
// If resolver is strict, *ResolutionError of the first lookup is
// returned without any records. If ctx is closed, records gathered so
// far are returned with ctx error.
func (r *Resolver) Resolve(ctx context.Context, addrs []addresses.Address) (ResultSet, error) {
	rv := make(ResultSet, 0, len(addrs))
	name := r.provider.Name()

	for idx, addr := range addrs {
		select {
		case <-ctx.Done():
			return rv, ctx.Err()
		default:
		}

		record, err := r.provider.Lookup(ctx, addr, r.columns)

		r.stats.Used(err)

		if err == nil {
			rv = append(rv, record)

			continue
		}

		var resolutionErr *ResolutionError

		switch {
		case errors.As(err, &resolutionErr) && idx == 0 && r.strict:
			return nil, err
		case errors.As(err, &resolutionErr):
			r.logger.LookupError(addr, name, err)
		case ctx.Err() != nil:
			return rv, ctx.Err()
		default:
			r.logger.DecodeError(addr, name, err)
		}
	}

	return rv, nil
}

// NewResolver creates a new resolver for a given provider.
func NewResolver(provider Provider, opts Opts) (*Resolver, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}

	rv := &Resolver{
		provider: provider,
		columns:  AllColumns(),
		logger:   opts.Logger,
		strict:   opts.Strict,
		stats:    &UsageStats{Name: provider.Name()},
	}

	if opts.Columns != nil {
		rv.columns = SelectColumns(opts.Columns)
	}

	if rv.logger == nil {
		rv.logger = noopLogger{}
	}

	return rv, nil
}
