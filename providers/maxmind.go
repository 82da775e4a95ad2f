package providers

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/oschwald/geoip2-golang"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

const maxmindLanguage = "en"

type maxmindReader interface {
	City(net.IP) (*geoip2.City, error)
	Close() error
}

// Maxmind is an offline provider which uses GeoLite2 City database.
type Maxmind struct {
	dbReader     maxmindReader
	dbReaderLock sync.RWMutex
}

func (m *Maxmind) Name() string {
	return NameMaxmind
}

// Close closes a database. Any lookup after that returns
// ErrDatabaseIsNotReady.
func (m *Maxmind) Close() error {
	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader == nil {
		return nil
	}

	err := m.dbReader.Close()
	m.dbReader = nil

	return err
}

func (m *Maxmind) Lookup(_ context.Context, addr addresses.Address,
	_ resolver.ColumnSelection) (resolver.Record, error) {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	if m.dbReader == nil {
		return resolver.Record{}, newResolutionError(NameMaxmind, addr, ErrDatabaseIsNotReady)
	}

	city, err := m.dbReader.City(addr.IP())
	if err != nil {
		return resolver.Record{}, newResolutionError(NameMaxmind, addr,
			fmt.Errorf("cannot lookup this address: %w", err))
	}

	log.WithFields(log.Fields{
		"address": addr.String(),
		"country": city.Country.IsoCode,
	}).Debug("Address was resolved by maxmind.")

	return maxmindRecord(addr, city), nil
}

func maxmindRecord(addr addresses.Address, city *geoip2.City) resolver.Record {
	rv := resolver.Record{
		Query:         resolver.String(addr.String()),
		Status:        status(city.Country.IsoCode != ""),
		Continent:     nonEmpty(city.Continent.Names[maxmindLanguage]),
		ContinentCode: nonEmpty(city.Continent.Code),
		Country:       nonEmpty(city.Country.Names[maxmindLanguage]),
		CountryCode:   nonEmpty(strings.ToUpper(city.Country.IsoCode)),
		City:          nonEmpty(city.City.Names[maxmindLanguage]),
		Zip:           nonEmpty(city.Postal.Code),
		Timezone:      nonEmpty(city.Location.TimeZone),
	}

	if len(city.Subdivisions) > 0 {
		rv.Region = nonEmpty(city.Subdivisions[0].IsoCode)
		rv.RegionName = nonEmpty(city.Subdivisions[0].Names[maxmindLanguage])
	}

	if city.Location.Latitude != 0 || city.Location.Longitude != 0 {
		rv.Lat = resolver.Float(city.Location.Latitude)
		rv.Lon = resolver.Float(city.Location.Longitude)
	}

	if city.Country.IsoCode != "" {
		rv.Proxy = resolver.Bool(city.Traits.IsAnonymousProxy)
	}

	return rv
}

// NewMaxmind opens a GeoLite2 City database.
func NewMaxmind(databasePath string) (*Maxmind, error) {
	if databasePath == "" {
		return nil, ErrDatabasePathIsRequired
	}

	reader, err := geoip2.Open(databasePath)
	if err != nil {
		return nil, fmt.Errorf("cannot open maxmind database: %w", err)
	}

	return &Maxmind{dbReader: reader}, nil
}
