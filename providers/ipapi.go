package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

// IPAPIDefaultBaseURL is an endpoint of a free ip-api.com plan.
const IPAPIDefaultBaseURL = "http://ip-api.com/json/"

type ipapiProvider struct {
	baseURL   string
	authToken string
	client    resolver.HTTPClient
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Lookup(ctx context.Context, addr addresses.Address,
	columns resolver.ColumnSelection) (resolver.Record, error) {
	rv := resolver.Record{}
	endpoint := i.requestURL(addr, columns)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return rv, newResolutionError(NameIPAPI, addr, fmt.Errorf("cannot build a request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return rv, newResolutionError(NameIPAPI, addr, fmt.Errorf("cannot send a request: %w", err))
	}

	defer flushResponse(resp.Body)

	if err := decodeObject(resp.Body, &rv); err != nil {
		return resolver.Record{}, newDecodeError(NameIPAPI, addr, err)
	}

	log.WithFields(log.Fields{
		"address": addr.String(),
		"status":  resp.StatusCode,
		"columns": columns.Len(),
	}).Debug("Address was resolved by ip-api.")

	return rv, nil
}

func (i ipapiProvider) requestURL(addr addresses.Address, columns resolver.ColumnSelection) string {
	params := []string{}
	geolocation := columns.Geolocation()

	if geolocation.Len() > 0 && geolocation.Len() < resolver.GeolocationColumns().Len() {
		params = append(params, "fields="+geolocation.String())
	}

	if i.authToken != "" {
		params = append(params, "key="+url.QueryEscape(i.authToken))
	}

	endpoint := i.baseURL + url.PathEscape(addr.String())

	if len(params) > 0 {
		endpoint += "?" + strings.Join(params, "&")
	}

	return endpoint
}

// NewIPAPI returns a provider for ip-api.com. Known parameters are
// base_url (a prefix an address is appended to) and auth_token (a key
// of a pro plan).
func NewIPAPI(client resolver.HTTPClient, parameters map[string]string) resolver.Provider {
	baseURL := parameters["base_url"]
	if baseURL == "" {
		baseURL = IPAPIDefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return ipapiProvider{
		baseURL:   baseURL,
		authToken: parameters["auth_token"],
		client:    client,
	}
}
