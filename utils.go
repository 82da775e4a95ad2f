package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/xrash/smetrics"

	"github.com/9seconds/chickadee/config"
	"github.com/9seconds/chickadee/providers"
	"github.com/9seconds/chickadee/resolver"
)

const (
	virustotalTokenEnvName = "VIRUSTOTAL_API_KEY"

	columnSuggestionThreshold = 0.85
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeHTTPClient(conf *config.Config) resolver.HTTPClient {
	userAgent := conf.UserAgent
	if userAgent == "" {
		userAgent = "chickadee/" + version
	}

	httpClient := &http.Client{
		Timeout: conf.HTTP.Timeout.Duration,
	}

	return resolver.NewHTTPClient(httpClient, resolver.HTTPClientOpts{
		UserAgent:                          userAgent,
		RateLimitInterval:                  conf.HTTP.RateLimitInterval.Duration,
		RateLimitBurst:                     conf.HTTP.RateLimitBurst,
		CircuitBreakerOpenThreshold:        uint32(conf.HTTP.CircuitBreakerOpenThreshold),
		CircuitBreakerHalfOpenTimeout:      conf.HTTP.CircuitBreakerHalfOpenTimeout.Duration,
		CircuitBreakerResetFailuresTimeout: conf.HTTP.CircuitBreakerResetFailuresTimeout.Duration,
	})
}

// makeProvider returns a provider and a function which releases its
// resources.
func makeProvider(conf *config.Config) (resolver.Provider, func(), error) {
	noop := func() {}

	switch conf.Provider {
	case providers.NameIPAPI:
		return providers.NewIPAPI(makeHTTPClient(conf), conf.IPAPI.Parameters()), noop, nil
	case providers.NameVirusTotal:
		params := conf.VirusTotal.Parameters()
		if params["auth_token"] == "" {
			params["auth_token"] = os.Getenv(virustotalTokenEnvName)
		}

		prov, err := providers.NewVirusTotal(makeHTTPClient(conf), params)
		if err != nil {
			return nil, noop, fmt.Errorf("cannot create virustotal provider: %w", err)
		}

		return prov, noop, nil
	case providers.NameMaxmind:
		prov, err := providers.NewMaxmind(conf.Maxmind.DatabasePath)
		if err != nil {
			return nil, noop, fmt.Errorf("cannot create maxmind provider: %w", err)
		}

		return prov, closeProvider(prov), nil
	case providers.NameIP2Location:
		prov, err := providers.NewIP2Location(conf.IP2Location.DatabasePath)
		if err != nil {
			return nil, noop, fmt.Errorf("cannot create ip2location provider: %w", err)
		}

		return prov, closeProvider(prov), nil
	}

	return nil, noop, fmt.Errorf("unsupported provider name: %s", conf.Provider)
}

func closeProvider(prov interface {
	resolver.Provider
	Close() error
}) func() {
	return func() {
		if err := prov.Close(); err != nil {
			log.WithField("provider", prov.Name()).WithError(err).Warn("Cannot close a database.")
		}
	}
}

// parseColumns splits a comma-separated list of columns. An empty
// value means that columns were not requested at all.
func parseColumns(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	rv := []string{}

	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			rv = append(rv, v)
		}
	}

	for _, v := range resolver.RejectedColumns(rv) {
		entry := log.WithField("column", v)

		if suggestion := suggestColumn(v); suggestion != "" {
			entry = entry.WithField("did_you_mean", suggestion)
		}

		entry.Warn("Unknown column is ignored.")
	}

	return rv
}

// suggestColumn returns the most similar known column or an empty
// string if nothing is similar enough.
func suggestColumn(name string) string {
	best := ""
	bestScore := columnSuggestionThreshold
	lowered := strings.ToLower(name)

	for _, v := range resolver.AllowedColumns() {
		score := smetrics.JaroWinkler(lowered, strings.ToLower(v), 0.7, 4)
		if score > bestScore || (best == "" && score == bestScore) {
			best = v
			bestScore = score
		}
	}

	return best
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
