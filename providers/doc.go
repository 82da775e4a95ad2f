// Package providers has implementations of enrichment providers.
//
// ip-api.com is a default one: it is queried over HTTP and can limit
// returned fields to a column selection. VirusTotal is also queried
// over HTTP but requires an API key and returns only a handful of
// fields. MaxMind and IP2Location are offline providers: they read
// local database files and ignore column selection.
//
// HTTP providers expect resolver.HTTPClient, so rate limiting and
// circuit breaking are applied outside of them.
package providers
