package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

// VirusTotalDefaultBaseURL is an endpoint of IP address reports.
const VirusTotalDefaultBaseURL = "https://www.virustotal.com/vtapi/v2/ip-address/report"

type virustotalResponse struct {
	ResponseCode                int                    `json:"response_code"`
	VerboseMsg                  string                 `json:"verbose_msg"`
	Country                     string                 `json:"country"`
	ASN                         json.RawMessage        `json:"asn"`
	ASOwner                     string                 `json:"as_owner"`
	Resolutions                 []virustotalResolution `json:"resolutions"`
	DetectedURLs                []json.RawMessage      `json:"detected_urls"`
	DetectedDownloadedSamples   []json.RawMessage      `json:"detected_downloaded_samples"`
	UndetectedDownloadedSamples []json.RawMessage      `json:"undetected_downloaded_samples"`
	UndetectedURLs              []json.RawMessage      `json:"undetected_urls"`
}

type virustotalResolution struct {
	Hostname     string `json:"hostname"`
	LastResolved string `json:"last_resolved"`
}

type virustotalProvider struct {
	baseURL   string
	authToken string
	client    resolver.HTTPClient
}

func (v virustotalProvider) Name() string {
	return NameVirusTotal
}

func (v virustotalProvider) Lookup(ctx context.Context, addr addresses.Address,
	_ resolver.ColumnSelection) (resolver.Record, error) {
	params := url.Values{}

	params.Set("apikey", v.authToken)
	params.Set("ip", addr.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return resolver.Record{}, newResolutionError(NameVirusTotal, addr,
			fmt.Errorf("cannot build a request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return resolver.Record{}, newResolutionError(NameVirusTotal, addr,
			fmt.Errorf("cannot send a request: %w", err))
	}

	defer flushResponse(resp.Body)

	jsonResponse := virustotalResponse{}

	if err := decodeObject(resp.Body, &jsonResponse); err != nil {
		return resolver.Record{}, newDecodeError(NameVirusTotal, addr, err)
	}

	rv, err := virustotalRecord(addr, jsonResponse)
	if err != nil {
		return resolver.Record{}, newDecodeError(NameVirusTotal, addr, err)
	}

	log.WithFields(log.Fields{
		"address":       addr.String(),
		"response_code": jsonResponse.ResponseCode,
		"verbose_msg":   jsonResponse.VerboseMsg,
		"detected_urls": len(jsonResponse.DetectedURLs),
	}).Debug("Address was resolved by VirusTotal.")

	return rv, nil
}

func virustotalRecord(addr addresses.Address, resp virustotalResponse) (resolver.Record, error) {
	asn, err := parseASN(resp.ASN)
	if err != nil {
		return resolver.Record{}, err
	}

	rv := resolver.Record{
		Query:       resolver.String(addr.String()),
		Status:      status(resp.ResponseCode == 1),
		CountryCode: nonEmpty(strings.ToUpper(resp.Country)),
		AS:          asn,
		ASName:      nonEmpty(resp.ASOwner),

		ResponseCode:                    resolver.Int(int64(resp.ResponseCode)),
		VerboseMsg:                      nonEmpty(resp.VerboseMsg),
		DetectedURLCount:                resolver.Int(int64(len(resp.DetectedURLs))),
		DetectedDownloadedSampleCount:   resolver.Int(int64(len(resp.DetectedDownloadedSamples))),
		UndetectedDownloadedSampleCount: resolver.Int(int64(len(resp.UndetectedDownloadedSamples))),
		UndetectedURLCount:              resolver.Int(int64(len(resp.UndetectedURLs))),
	}

	if resp.Resolutions != nil {
		rv.Resolutions = make([]resolver.Resolution, len(resp.Resolutions))

		for i, v := range resp.Resolutions {
			rv.Resolutions[i] = resolver.Resolution{
				Hostname:     v.Hostname,
				LastResolved: v.LastResolved,
			}
		}
	}

	return rv, nil
}

// parseASN accepts both numbers and strings: VirusTotal returns both
// of them.
func parseASN(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var value string

	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("incorrect asn: %w", err)
		}
	} else {
		number := json.Number("")

		if err := json.Unmarshal(raw, &number); err != nil {
			return nil, fmt.Errorf("incorrect asn: %w", err)
		}

		value = number.String()
	}

	if value == "" {
		return nil, nil
	}

	if _, err := strconv.ParseUint(value, 10, 32); err == nil {
		value = "AS" + value
	}

	return resolver.String(value), nil
}

// NewVirusTotal returns a provider for VirusTotal IP address reports.
// Known parameters are auth_token (required) and base_url.
func NewVirusTotal(client resolver.HTTPClient, parameters map[string]string) (resolver.Provider, error) {
	if parameters["auth_token"] == "" {
		return nil, ErrAuthTokenIsRequired
	}

	baseURL := parameters["base_url"]
	if baseURL == "" {
		baseURL = VirusTotalDefaultBaseURL
	}

	return virustotalProvider{
		baseURL:   baseURL,
		authToken: parameters["auth_token"],
		client:    client,
	}, nil
}
