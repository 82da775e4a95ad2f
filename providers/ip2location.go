package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ip2location/ip2location-go/v9"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

type ip2locationReader interface {
	Get_all(string) (ip2location.IP2Locationrecord, error) // nolint: golint, stylecheck
	Close()
}

// IP2Location is an offline provider which uses IP2Location BIN
// database.
type IP2Location struct {
	dbReader     ip2locationReader
	dbReaderLock sync.Mutex
}

func (i *IP2Location) Name() string {
	return NameIP2Location
}

// Close closes a database. Any lookup after that returns
// ErrDatabaseIsNotReady.
func (i *IP2Location) Close() error {
	i.dbReaderLock.Lock()
	defer i.dbReaderLock.Unlock()

	if i.dbReader != nil {
		i.dbReader.Close()
		i.dbReader = nil
	}

	return nil
}

func (i *IP2Location) Lookup(_ context.Context, addr addresses.Address,
	_ resolver.ColumnSelection) (resolver.Record, error) {
	i.dbReaderLock.Lock()
	defer i.dbReaderLock.Unlock()

	if i.dbReader == nil {
		return resolver.Record{}, newResolutionError(NameIP2Location, addr, ErrDatabaseIsNotReady)
	}

	result, err := i.dbReader.Get_all(addr.Addr().WithZone("").String())
	if err != nil {
		return resolver.Record{}, newResolutionError(NameIP2Location, addr,
			fmt.Errorf("cannot lookup this address: %w", err))
	}

	log.WithFields(log.Fields{
		"address": addr.String(),
		"country": result.Country_short,
	}).Debug("Address was resolved by ip2location.")

	return ip2locationRecord(addr, result), nil
}

func ip2locationRecord(addr addresses.Address, result ip2location.IP2Locationrecord) resolver.Record {
	countryCode := ip2locationValue(result.Country_short)

	rv := resolver.Record{
		Query:       resolver.String(addr.String()),
		Status:      status(countryCode != nil),
		Country:     ip2locationValue(result.Country_long),
		CountryCode: countryCode,
		RegionName:  ip2locationValue(result.Region),
		City:        ip2locationValue(result.City),
		Zip:         ip2locationValue(result.Zipcode),
		ISP:         ip2locationValue(result.Isp),
	}

	if countryCode != nil && (result.Latitude != 0 || result.Longitude != 0) {
		rv.Lat = resolver.Float(float64(result.Latitude))
		rv.Lon = resolver.Float(float64(result.Longitude))
	}

	if offset, ok := parseUTCOffset(result.Timezone); ok {
		rv.Offset = resolver.Int(offset)
	}

	return rv
}

// ip2locationValue converts placeholders for missing values into nil.
// Databases without some field fill it with a long notice to upgrade.
func ip2locationValue(value string) *string {
	switch {
	case value == "", value == "-":
		return nil
	case strings.Contains(value, "unavailable"), strings.HasPrefix(value, "Invalid"):
		return nil
	}

	return resolver.String(value)
}

// parseUTCOffset parses timezones like -07:00 into seconds.
func parseUTCOffset(value string) (int64, bool) {
	if len(value) != len("+00:00") || value[3] != ':' {
		return 0, false
	}

	sign := int64(1)

	switch value[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}

	hours, err := strconv.ParseUint(value[1:3], 10, 8)
	if err != nil {
		return 0, false
	}

	minutes, err := strconv.ParseUint(value[4:], 10, 8)
	if err != nil || minutes >= 60 {
		return 0, false
	}

	return sign * int64(hours*3600+minutes*60), true
}

// NewIP2Location opens a BIN database.
func NewIP2Location(databasePath string) (*IP2Location, error) {
	if databasePath == "" {
		return nil, ErrDatabasePathIsRequired
	}

	db, err := ip2location.OpenDB(databasePath)
	if err != nil {
		return nil, fmt.Errorf("cannot open ip2location database: %w", err)
	}

	return &IP2Location{dbReader: db}, nil
}
