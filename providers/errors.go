package providers

import "errors"

var (
	// ErrDatabaseIsNotReady is returned if you are trying to access
	// an offline provider which has no opened database. For example,
	// it was closed already.
	ErrDatabaseIsNotReady = errors.New("database is not opened")

	// ErrAuthTokenIsRequired is returned if you are trying to initialize
	// a provider which requires some token to work.
	ErrAuthTokenIsRequired = errors.New("auth token is required")

	// ErrDatabasePathIsRequired is returned if you are trying to
	// initialize an offline provider without a path to its database.
	ErrDatabasePathIsRequired = errors.New("database path is required")

	// ErrNotAnObject is returned if a provider has responded with a
	// valid JSON which is not an object.
	ErrNotAnObject = errors.New("response is not a JSON object")
)
