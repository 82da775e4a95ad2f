package providers

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
	"github.com/ip2location/ip2location-go/v9"
	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type maxmindReaderMock struct {
	mock.Mock
}

func (m *maxmindReaderMock) City(ip net.IP) (*geoip2.City, error) {
	args := m.Called(ip)

	return args.Get(0).(*geoip2.City), args.Error(1)
}

func (m *maxmindReaderMock) Close() error {
	return m.Called().Error(0)
}

type ip2locationReaderMock struct {
	mock.Mock
}

func (m *ip2locationReaderMock) Get_all(ip string) (ip2location.IP2Locationrecord, error) { // nolint: golint, stylecheck
	args := m.Called(ip)

	return args.Get(0).(ip2location.IP2Locationrecord), args.Error(1)
}

func (m *ip2locationReaderMock) Close() {
	m.Called()
}

type MaxmindTestSuite struct {
	suite.Suite

	reader *maxmindReaderMock
	prov   *Maxmind
	addr   addresses.Address
}

func (suite *MaxmindTestSuite) SetupTest() {
	suite.reader = &maxmindReaderMock{}
	suite.prov = &Maxmind{dbReader: suite.reader}
	suite.addr = addresses.MustParseAddress("81.2.69.142")
}

func (suite *MaxmindTestSuite) TearDownTest() {
	suite.reader.AssertExpectations(suite.T())
}

func (suite *MaxmindTestSuite) TestName() {
	suite.Equal(NameMaxmind, suite.prov.Name())
}

func (suite *MaxmindTestSuite) TestLookupOk() {
	city := &geoip2.City{}

	city.City.Names = map[string]string{"en": "London"}
	city.Continent.Code = "EU"
	city.Continent.Names = map[string]string{"en": "Europe"}
	city.Country.IsoCode = "gb"
	city.Country.Names = map[string]string{"en": "United Kingdom"}
	city.Location.Latitude = 51.5142
	city.Location.Longitude = -0.0931
	city.Location.TimeZone = "Europe/London"
	city.Postal.Code = "EC2V"

	suite.reader.On("City", suite.addr.IP()).Return(city, nil)

	record, err := suite.prov.Lookup(context.Background(), suite.addr, resolver.AllColumns())

	suite.NoError(err)
	suite.Equal("81.2.69.142", *record.Query)
	suite.Equal("success", *record.Status)
	suite.Equal("Europe", *record.Continent)
	suite.Equal("EU", *record.ContinentCode)
	suite.Equal("United Kingdom", *record.Country)
	suite.Equal("GB", *record.CountryCode)
	suite.Equal("London", *record.City)
	suite.Equal("EC2V", *record.Zip)
	suite.Equal(51.5142, *record.Lat)
	suite.Equal(-0.0931, *record.Lon)
	suite.Equal("Europe/London", *record.Timezone)
	suite.False(*record.Proxy)
	suite.Nil(record.Region)
	suite.Nil(record.ISP)
}

func (suite *MaxmindTestSuite) TestLookupUnknown() {
	suite.reader.On("City", suite.addr.IP()).Return(&geoip2.City{}, nil)

	record, err := suite.prov.Lookup(context.Background(), suite.addr, resolver.AllColumns())

	suite.NoError(err)
	suite.Equal("fail", *record.Status)
	suite.Nil(record.Lat)
	suite.Nil(record.Proxy)
	suite.Nil(record.Country)
}

func (suite *MaxmindTestSuite) TestLookupError() {
	suite.reader.On("City", suite.addr.IP()).Return((*geoip2.City)(nil), io.ErrUnexpectedEOF)

	_, err := suite.prov.Lookup(context.Background(), suite.addr, resolver.AllColumns())

	var resolutionErr *resolver.ResolutionError

	suite.True(errors.As(err, &resolutionErr))
	suite.True(errors.Is(err, io.ErrUnexpectedEOF))
}

func (suite *MaxmindTestSuite) TestClosed() {
	suite.reader.On("Close").Once().Return(nil)

	suite.NoError(suite.prov.Close())
	suite.NoError(suite.prov.Close())

	_, err := suite.prov.Lookup(context.Background(), suite.addr, resolver.AllColumns())

	suite.True(errors.Is(err, ErrDatabaseIsNotReady))
}

func (suite *MaxmindTestSuite) TestOpen() {
	_, err := NewMaxmind("")

	suite.True(errors.Is(err, ErrDatabasePathIsRequired))

	_, err = NewMaxmind("/nonexisting/GeoLite2-City.mmdb")

	suite.Error(err)
}

func TestMaxmind(t *testing.T) {
	suite.Run(t, &MaxmindTestSuite{})
}

type IP2LocationTestSuite struct {
	suite.Suite

	reader *ip2locationReaderMock
	prov   *IP2Location
}

func (suite *IP2LocationTestSuite) SetupTest() {
	suite.reader = &ip2locationReaderMock{}
	suite.prov = &IP2Location{dbReader: suite.reader}
}

func (suite *IP2LocationTestSuite) TearDownTest() {
	suite.reader.AssertExpectations(suite.T())
}

func (suite *IP2LocationTestSuite) TestName() {
	suite.Equal(NameIP2Location, suite.prov.Name())
}

func (suite *IP2LocationTestSuite) TestLookupOk() {
	suite.reader.On("Get_all", "8.8.8.8").Return(ip2location.IP2Locationrecord{
		Country_short: "US",
		Country_long:  "United States of America",
		Region:        "California",
		City:          "Mountain View",
		Isp:           "This parameter is unavailable for selected data file. Please upgrade the data file.",
		Zipcode:       "94043",
		Timezone:      "-07:00",
		Latitude:      37.40599,
		Longitude:     -122.078514,
	}, nil)

	record, err := suite.prov.Lookup(context.Background(),
		addresses.MustParseAddress("8.8.8.8"), resolver.AllColumns())

	suite.NoError(err)
	suite.Equal("success", *record.Status)
	suite.Equal("US", *record.CountryCode)
	suite.Equal("United States of America", *record.Country)
	suite.Equal("California", *record.RegionName)
	suite.Equal("Mountain View", *record.City)
	suite.Equal("94043", *record.Zip)
	suite.EqualValues(-25200, *record.Offset)
	suite.InDelta(37.40599, *record.Lat, 0.0001)
	suite.InDelta(-122.078514, *record.Lon, 0.0001)
	suite.Nil(record.ISP)
	suite.Nil(record.Timezone)
}

func (suite *IP2LocationTestSuite) TestLookupUnknown() {
	suite.reader.On("Get_all", "fe80::1").Return(ip2location.IP2Locationrecord{
		Country_short: "-",
		Country_long:  "-",
		Region:        "-",
		City:          "-",
	}, nil)

	record, err := suite.prov.Lookup(context.Background(),
		addresses.MustParseAddress("fe80::1%eth0"), resolver.AllColumns())

	suite.NoError(err)
	suite.Equal("fe80::1%eth0", *record.Query)
	suite.Equal("fail", *record.Status)
	suite.Nil(record.Country)
	suite.Nil(record.Lat)
	suite.Nil(record.Offset)
}

func (suite *IP2LocationTestSuite) TestLookupError() {
	suite.reader.On("Get_all", "8.8.8.8").Return(ip2location.IP2Locationrecord{}, io.EOF)

	_, err := suite.prov.Lookup(context.Background(),
		addresses.MustParseAddress("8.8.8.8"), resolver.AllColumns())

	var resolutionErr *resolver.ResolutionError

	suite.True(errors.As(err, &resolutionErr))
}

func (suite *IP2LocationTestSuite) TestClosed() {
	suite.reader.On("Close").Once()

	suite.NoError(suite.prov.Close())
	suite.NoError(suite.prov.Close())

	_, err := suite.prov.Lookup(context.Background(),
		addresses.MustParseAddress("8.8.8.8"), resolver.AllColumns())

	suite.True(errors.Is(err, ErrDatabaseIsNotReady))
}

func (suite *IP2LocationTestSuite) TestOpen() {
	_, err := NewIP2Location("")

	suite.True(errors.Is(err, ErrDatabasePathIsRequired))

	_, err = NewIP2Location("/nonexisting/IP2LOCATION-LITE-DB11.BIN")

	suite.Error(err)
}

func TestIP2Location(t *testing.T) {
	suite.Run(t, &IP2LocationTestSuite{})
}

func TestParseUTCOffset(t *testing.T) {
	testData := map[string]struct {
		offset int64
		ok     bool
	}{
		"+00:00":  {0, true},
		"-07:00":  {-25200, true},
		"+05:30":  {19800, true},
		"+05:75":  {0, false},
		"05:30":   {0, false},
		"-":       {0, false},
		"":        {0, false},
		"+0a:00":  {0, false},
		"+05:300": {0, false},
	}

	for value, expected := range testData {
		offset, ok := parseUTCOffset(value)

		if ok != expected.ok || offset != expected.offset {
			t.Errorf("%q: expected (%d, %v), got (%d, %v)", value, expected.offset, expected.ok, offset, ok)
		}
	}
}

func TestParseASN(t *testing.T) {
	testData := map[string]string{
		`15169`:     "AS15169",
		`"15169"`:   "AS15169",
		`"AS15169"`: "AS15169",
		`""`:        "",
		`null`:      "",
	}

	for raw, expected := range testData {
		value, err := parseASN([]byte(raw))
		if err != nil {
			t.Errorf("%s: unexpected error %v", raw, err)
			continue
		}

		switch {
		case expected == "" && value != nil:
			t.Errorf("%s: expected nil, got %q", raw, *value)
		case expected != "" && (value == nil || *value != expected):
			t.Errorf("%s: expected %q", raw, expected)
		}
	}
}
