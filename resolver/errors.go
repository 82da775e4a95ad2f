package resolver

import (
	"errors"

	"github.com/9seconds/chickadee/addresses"
)

var (
	// ErrCircuitBreakerOpened is returned by HTTP client if a circuit
	// breaker is opened and no requests are allowed for a while.
	ErrCircuitBreakerOpened = errors.New("circuit breaker is opened")

	// ErrNoProvider is returned if resolver was created without a
	// provider.
	ErrNoProvider = errors.New("provider is not set")
)

// ResolutionError is a transport failure: a provider was not able to
// get any response for an address.
type ResolutionError struct {
	Address  addresses.Address
	Provider string
	Err      error
}

func (r *ResolutionError) Unwrap() error {
	if r == nil {
		return nil
	}

	return r.Err
}

func (r *ResolutionError) Error() string {
	if r == nil {
		return ""
	}

	return annotatedMessage("cannot resolve "+r.Address.String()+" with "+r.Provider, r.Err)
}

// RecordDecodeError means that a provider has responded but a response
// cannot be turned into a record.
type RecordDecodeError struct {
	Address  addresses.Address
	Provider string
	Err      error
}

func (r *RecordDecodeError) Unwrap() error {
	if r == nil {
		return nil
	}

	return r.Err
}

func (r *RecordDecodeError) Error() string {
	if r == nil {
		return ""
	}

	return annotatedMessage("cannot decode a response of "+r.Provider+" for "+r.Address.String(), r.Err)
}

// OutputSerializationError means that a projected record cannot be
// serialized.
type OutputSerializationError struct {
	Err error
}

func (o *OutputSerializationError) Unwrap() error {
	if o == nil {
		return nil
	}

	return o.Err
}

func (o *OutputSerializationError) Error() string {
	if o == nil {
		return ""
	}

	return annotatedMessage("cannot serialize a record", o.Err)
}

// StatusError is returned by HTTP client if a target has responded
// with non-2xx status code.
type StatusError struct {
	Status     string
	StatusCode int
}

func (s *StatusError) Error() string {
	return "netloc has responded with " + s.Status
}

func annotatedMessage(message string, err error) string {
	if err == nil {
		return message
	}

	return message + ": " + err.Error()
}
