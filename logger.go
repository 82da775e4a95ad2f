package main

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

type logger struct {
	lookupLog zerolog.Logger
	outputLog zerolog.Logger
}

func (l *logger) LookupError(addr addresses.Address, name string, err error) {
	l.lookupLog.Warn().Str("provider", name).Stringer("address", addr).Err(err).Msg("Cannot resolve address.")
}

func (l *logger) DecodeError(addr addresses.Address, name string, err error) {
	l.lookupLog.Warn().Str("provider", name).Stringer("address", addr).Err(err).Msg("Cannot decode a record.")
}

func (l *logger) OutputError(err error) {
	l.outputLog.Error().Err(err).Msg("Cannot write a record.")
}

func newLogger(writer io.Writer) resolver.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(writer).With().Timestamp().Str("event_name", "lookup").Logger(),
		outputLog: zerolog.New(writer).With().Timestamp().Str("event_name", "output").Logger(),
	}
}
