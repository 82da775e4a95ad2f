// Package config parses TOML configuration of chickadee.
package config

import (
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/providers"
	"github.com/9seconds/chickadee/source"
)

const (
	DefaultProvider                           = providers.NameIPAPI
	DefaultHTTPTimeout                        = 10 * time.Second
	DefaultRateLimitInterval                  = 1340 * time.Millisecond
	DefaultRateLimitBurst                     = 1
	DefaultCircuitBreakerOpenThreshold        = 0
	DefaultCircuitBreakerHalfOpenTimeout      = time.Minute
	DefaultCircuitBreakerResetFailuresTimeout = 20 * time.Second
)

// Duration is a time.Duration which is written as a string like "10s"
// in config file.
type Duration struct {
	time.Duration
}

func (dur *Duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

// HTTPConfig has parameters of HTTP client shared by online providers.
type HTTPConfig struct {
	Timeout                            Duration `toml:"timeout"`
	RateLimitInterval                  Duration `toml:"rate_limit_interval"`
	RateLimitBurst                     int      `toml:"rate_limit_burst"`
	CircuitBreakerOpenThreshold        int      `toml:"circuit_breaker_open_threshold"`
	CircuitBreakerHalfOpenTimeout      Duration `toml:"circuit_breaker_half_open_timeout"`
	CircuitBreakerResetFailuresTimeout Duration `toml:"circuit_breaker_reset_failures_timeout"`
}

// ProviderConfig has provider-specific parameters. Each provider uses
// only some of them.
type ProviderConfig struct {
	BaseURL      string `toml:"base_url"`
	AuthToken    string `toml:"auth_token"`
	DatabasePath string `toml:"database_path"`
}

// Parameters returns non-empty parameters as a map.
func (p ProviderConfig) Parameters() map[string]string {
	rv := map[string]string{}

	if p.BaseURL != "" {
		rv["base_url"] = p.BaseURL
	}

	if p.AuthToken != "" {
		rv["auth_token"] = p.AuthToken
	}

	if p.DatabasePath != "" {
		rv["database_path"] = p.DatabasePath
	}

	return rv
}

type Config struct {
	Provider            string         `toml:"provider"`
	UserAgent           string         `toml:"user_agent"`
	Strict              bool           `toml:"strict"`
	MaxDecompressedSize int64          `toml:"max_decompressed_size"`
	ExcludeNetworks     []string       `toml:"exclude_networks"`
	HTTP                HTTPConfig     `toml:"http"`
	IPAPI               ProviderConfig `toml:"ip_api"`
	VirusTotal          ProviderConfig `toml:"virustotal"`
	Maxmind             ProviderConfig `toml:"maxmind"`
	IP2Location         ProviderConfig `toml:"ip2location"`
}

// Default returns a config which is used if no file is given.
func Default() *Config {
	return &Config{
		Provider:            DefaultProvider,
		MaxDecompressedSize: source.DefaultMaxSize,
		HTTP: HTTPConfig{
			Timeout:                            Duration{DefaultHTTPTimeout},
			RateLimitInterval:                  Duration{DefaultRateLimitInterval},
			RateLimitBurst:                     DefaultRateLimitBurst,
			CircuitBreakerOpenThreshold:        DefaultCircuitBreakerOpenThreshold,
			CircuitBreakerHalfOpenTimeout:      Duration{DefaultCircuitBreakerHalfOpenTimeout},
			CircuitBreakerResetFailuresTimeout: Duration{DefaultCircuitBreakerResetFailuresTimeout},
		},
	}
}

// Parse reads a TOML config. Keys which are absent keep their default
// values.
func Parse(file io.Reader) (*Config, error) {
	conf := Default()

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	meta, err := toml.Decode(string(buf), conf)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("Unknown config key %s", undecoded[0].String())
	}

	if err = Validate(conf); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

// ParseFile reads a TOML config from the path.
func ParseFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open config file %s", path)
	}

	defer file.Close()

	return Parse(file)
}

// Validate checks values of the config.
func Validate(conf *Config) error {
	if !isKnownProvider(conf.Provider) {
		return errors.Errorf("Unknown provider %s", conf.Provider)
	}

	if conf.MaxDecompressedSize <= 0 {
		return errors.Errorf("Incorrect max decompressed size %d", conf.MaxDecompressedSize)
	}

	durations := map[string]time.Duration{
		"http.timeout":                                conf.HTTP.Timeout.Duration,
		"http.rate_limit_interval":                    conf.HTTP.RateLimitInterval.Duration,
		"http.circuit_breaker_half_open_timeout":      conf.HTTP.CircuitBreakerHalfOpenTimeout.Duration,
		"http.circuit_breaker_reset_failures_timeout": conf.HTTP.CircuitBreakerResetFailuresTimeout.Duration,
	}

	for k, v := range durations {
		if v < 0 {
			return errors.Errorf("Incorrect duration %s for %s", v, k)
		}
	}

	if conf.HTTP.RateLimitBurst < 0 {
		return errors.Errorf("Incorrect rate limit burst %d", conf.HTTP.RateLimitBurst)
	}

	if conf.HTTP.CircuitBreakerOpenThreshold < 0 {
		return errors.Errorf("Incorrect circuit breaker threshold %d",
			conf.HTTP.CircuitBreakerOpenThreshold)
	}

	if _, err := addresses.NewNetworkFilter(conf.ExcludeNetworks); err != nil {
		return errors.Annotate(err, "Incorrect exclude_networks")
	}

	return nil
}

func isKnownProvider(name string) bool {
	for _, v := range providers.Names() {
		if v == name {
			return true
		}
	}

	return false
}
