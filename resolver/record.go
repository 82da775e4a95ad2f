package resolver

// Record is an enrichment result for a single address. Every field is
// optional: nil means that provider has not returned it, which is
// different from a returned empty value.
//
// JSON field names follow ip-api.com conventions. The last group of
// fields comes from threat reports.
type Record struct {
	Query         *string  `json:"query,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Continent     *string  `json:"continent,omitempty"`
	ContinentCode *string  `json:"continentCode,omitempty"`
	Country       *string  `json:"country,omitempty"`
	CountryCode   *string  `json:"countryCode,omitempty"`
	Region        *string  `json:"region,omitempty"`
	RegionName    *string  `json:"regionName,omitempty"`
	City          *string  `json:"city,omitempty"`
	District      *string  `json:"district,omitempty"`
	Zip           *string  `json:"zip,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	Timezone      *string  `json:"timezone,omitempty"`
	Offset        *int64   `json:"offset,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	ISP           *string  `json:"isp,omitempty"`
	Org           *string  `json:"org,omitempty"`
	AS            *string  `json:"as,omitempty"`
	ASName        *string  `json:"asname,omitempty"`
	Mobile        *bool    `json:"mobile,omitempty"`
	Proxy         *bool    `json:"proxy,omitempty"`
	Hosting       *bool    `json:"hosting,omitempty"`

	ResponseCode                    *int64       `json:"responseCode,omitempty"`
	VerboseMsg                      *string      `json:"verboseMsg,omitempty"`
	Resolutions                     []Resolution `json:"resolutions,omitempty"`
	DetectedURLCount                *int64       `json:"detectedUrlCount,omitempty"`
	DetectedDownloadedSampleCount   *int64       `json:"detectedDownloadedSampleCount,omitempty"`
	UndetectedDownloadedSampleCount *int64       `json:"undetectedDownloadedSampleCount,omitempty"`
	UndetectedURLCount              *int64       `json:"undetectedUrlCount,omitempty"`
}

// Resolution is a hostname which was resolved to an address.
type Resolution struct {
	Hostname     string `json:"hostname"`
	LastResolved string `json:"lastResolved"`
}

// Get returns a value of the field by its column name. The second
// value is false if the field is absent or the name is unknown.
func (r *Record) Get(name string) (interface{}, bool) {
	col, ok := columnIndex[name]
	if !ok {
		return nil, false
	}

	return col.get(r)
}

// String makes an optional string value.
func String(value string) *string {
	return &value
}

// Float makes an optional float value.
func Float(value float64) *float64 {
	return &value
}

// Int makes an optional integer value.
func Int(value int64) *int64 {
	return &value
}

// Bool makes an optional boolean value.
func Bool(value bool) *bool {
	return &value
}

// ResultSet is an ordered list of records. It keeps the order of input
// addresses but has no slots for addresses which were not resolved.
type ResultSet []Record
