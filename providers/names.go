package providers

const (
	// Identifier for ip-api.com.
	NameIPAPI = "ip-api"

	// Identifier for VirusTotal IP address reports.
	NameVirusTotal = "virustotal"

	// Identifier for MaxMind GeoLite2 City database.
	NameMaxmind = "maxmind"

	// Identifier for IP2Location BIN database.
	NameIP2Location = "ip2location"
)

// Names returns identifiers of all known providers.
func Names() []string {
	return []string{NameIPAPI, NameVirusTotal, NameMaxmind, NameIP2Location}
}
