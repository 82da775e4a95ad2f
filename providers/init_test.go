package providers_test

import (
	"net/http"

	"github.com/9seconds/chickadee/resolver"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite

	http resolver.HTTPClient
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = resolver.NewHTTPClient(&http.Client{}, resolver.HTTPClientOpts{
		UserAgent:                   "test-agent",
		RateLimitInterval:           1,
		RateLimitBurst:              100,
		CircuitBreakerOpenThreshold: 100,
	})
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}
