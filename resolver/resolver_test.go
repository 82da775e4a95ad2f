package resolver_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResolverTestSuite struct {
	suite.Suite

	ctx       context.Context
	ctxCancel context.CancelFunc
	prov      *ProviderMock
	logger    *LoggerMock
	addrs     []addresses.Address
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.ctx, suite.ctxCancel = context.WithCancel(context.Background())
	suite.prov = &ProviderMock{}
	suite.logger = &LoggerMock{}
	suite.addrs = []addresses.Address{
		addresses.MustParseAddress("1.1.1.1"),
		addresses.MustParseAddress("8.8.8.8"),
		addresses.MustParseAddress("2001:4860:4860::8844"),
	}

	suite.prov.On("Name").Return("mock")
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.ctxCancel()
	suite.prov.AssertExpectations(suite.T())
	suite.logger.AssertExpectations(suite.T())
}

func (suite *ResolverTestSuite) Record(addr addresses.Address) resolver.Record {
	return resolver.Record{
		Query:  resolver.String(addr.String()),
		Status: resolver.String("success"),
	}
}

func (suite *ResolverTestSuite) Make(opts resolver.Opts) *resolver.Resolver {
	opts.Logger = suite.logger

	res, err := resolver.NewResolver(suite.prov, opts)

	suite.NoError(err)

	return res
}

func (suite *ResolverTestSuite) Queries(results resolver.ResultSet) []string {
	rv := make([]string, len(results))

	for i, v := range results {
		rv[i] = *v.Query
	}

	return rv
}

func (suite *ResolverTestSuite) TestNoProvider() {
	_, err := resolver.NewResolver(nil, resolver.Opts{})

	suite.True(errors.Is(err, resolver.ErrNoProvider))
}

func (suite *ResolverTestSuite) TestEffectiveColumns() {
	suite.True(suite.Make(resolver.Opts{}).Columns().IsFull())

	res := suite.Make(resolver.Opts{Columns: []string{"city", "unknown", "query"}})

	suite.Equal([]string{"query", "city"}, res.Columns().Names())
	suite.Equal(0, suite.Make(resolver.Opts{Columns: []string{}}).Columns().Len())
}

func (suite *ResolverTestSuite) TestAllOk() {
	res := suite.Make(resolver.Opts{Columns: []string{"query"}})

	for _, addr := range suite.addrs {
		suite.prov.On("Lookup", mock.Anything, addr, res.Columns()).
			Once().
			Return(suite.Record(addr), nil)
	}

	results, err := res.Resolve(suite.ctx, suite.addrs)

	suite.NoError(err)
	suite.Equal([]string{"1.1.1.1", "8.8.8.8", "2001:4860:4860::8844"}, suite.Queries(results))

	success, failure := res.Stats().Counts()

	suite.EqualValues(3, success)
	suite.EqualValues(0, failure)
}

func (suite *ResolverTestSuite) TestEmpty() {
	results, err := suite.Make(resolver.Opts{}).Resolve(suite.ctx, nil)

	suite.NoError(err)
	suite.Empty(results)
}

func (suite *ResolverTestSuite) TestDecodeErrorIsSkipped() {
	decodeErr := &resolver.RecordDecodeError{
		Address:  suite.addrs[1],
		Provider: "mock",
		Err:      io.ErrUnexpectedEOF,
	}

	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Return(suite.Record(suite.addrs[0]), nil)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[1], mock.Anything).
		Return(resolver.Record{}, decodeErr)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[2], mock.Anything).
		Return(suite.Record(suite.addrs[2]), nil)
	suite.logger.On("DecodeError", suite.addrs[1], "mock", decodeErr).Once()

	results, err := suite.Make(resolver.Opts{Strict: true}).Resolve(suite.ctx, suite.addrs)

	suite.NoError(err)
	suite.Equal([]string{"1.1.1.1", "2001:4860:4860::8844"}, suite.Queries(results))
}

func (suite *ResolverTestSuite) TestFirstDecodeErrorIsSkipped() {
	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Return(resolver.Record{}, io.EOF)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[1], mock.Anything).
		Return(suite.Record(suite.addrs[1]), nil)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[2], mock.Anything).
		Return(suite.Record(suite.addrs[2]), nil)
	suite.logger.On("DecodeError", suite.addrs[0], "mock", io.EOF).Once()

	results, err := suite.Make(resolver.Opts{Strict: true}).Resolve(suite.ctx, suite.addrs)

	suite.NoError(err)
	suite.Len(results, 2)
}

func (suite *ResolverTestSuite) TestFirstTransportErrorSkipped() {
	resolutionErr := &resolver.ResolutionError{
		Address:  suite.addrs[0],
		Provider: "mock",
		Err:      io.EOF,
	}

	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Return(resolver.Record{}, resolutionErr)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[1], mock.Anything).
		Return(suite.Record(suite.addrs[1]), nil)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[2], mock.Anything).
		Return(suite.Record(suite.addrs[2]), nil)
	suite.logger.On("LookupError", suite.addrs[0], "mock", resolutionErr).Once()

	results, err := suite.Make(resolver.Opts{}).Resolve(suite.ctx, suite.addrs)

	suite.NoError(err)
	suite.Equal([]string{"8.8.8.8", "2001:4860:4860::8844"}, suite.Queries(results))
}

func (suite *ResolverTestSuite) TestFirstTransportErrorStrict() {
	resolutionErr := &resolver.ResolutionError{
		Address:  suite.addrs[0],
		Provider: "mock",
		Err:      io.EOF,
	}

	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Once().
		Return(resolver.Record{}, resolutionErr)

	results, err := suite.Make(resolver.Opts{Strict: true}).Resolve(suite.ctx, suite.addrs)

	suite.Nil(results)

	var target *resolver.ResolutionError

	suite.True(errors.As(err, &target))
	suite.True(errors.Is(err, io.EOF))
	suite.True(target.Address.Equal(suite.addrs[0]))
	suite.prov.AssertNumberOfCalls(suite.T(), "Lookup", 1)
}

func (suite *ResolverTestSuite) TestLaterTransportErrorStrict() {
	resolutionErr := &resolver.ResolutionError{
		Address:  suite.addrs[1],
		Provider: "mock",
		Err:      io.EOF,
	}

	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Return(suite.Record(suite.addrs[0]), nil)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[1], mock.Anything).
		Return(resolver.Record{}, resolutionErr)
	suite.prov.On("Lookup", mock.Anything, suite.addrs[2], mock.Anything).
		Return(suite.Record(suite.addrs[2]), nil)
	suite.logger.On("LookupError", suite.addrs[1], "mock", resolutionErr).Once()

	res := suite.Make(resolver.Opts{Strict: true})
	results, err := res.Resolve(suite.ctx, suite.addrs)

	suite.NoError(err)
	suite.Equal([]string{"1.1.1.1", "2001:4860:4860::8844"}, suite.Queries(results))

	success, failure := res.Stats().Counts()

	suite.EqualValues(2, success)
	suite.EqualValues(1, failure)
}

func (suite *ResolverTestSuite) TestCancelledContext() {
	suite.prov.On("Lookup", mock.Anything, suite.addrs[0], mock.Anything).
		Run(func(_ mock.Arguments) { suite.ctxCancel() }).
		Return(suite.Record(suite.addrs[0]), nil)

	results, err := suite.Make(resolver.Opts{}).Resolve(suite.ctx, suite.addrs)

	suite.True(errors.Is(err, context.Canceled))
	suite.Equal([]string{"1.1.1.1"}, suite.Queries(results))
	suite.prov.AssertNumberOfCalls(suite.T(), "Lookup", 1)
}

func TestResolver(t *testing.T) {
	suite.Run(t, &ResolverTestSuite{})
}
