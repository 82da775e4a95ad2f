package resolver_test

import (
	"context"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
	"github.com/stretchr/testify/mock"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Lookup(ctx context.Context, addr addresses.Address,
	columns resolver.ColumnSelection) (resolver.Record, error) {
	args := m.Called(ctx, addr, columns)

	return args.Get(0).(resolver.Record), args.Error(1)
}

func (m *ProviderMock) Name() string {
	return m.Called().String(0)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(addr addresses.Address, name string, err error) {
	m.Called(addr, name, err)
}

func (m *LoggerMock) DecodeError(addr addresses.Address, name string, err error) {
	m.Called(addr, name, err)
}

func (m *LoggerMock) OutputError(err error) {
	m.Called(err)
}
