// Chickadee extracts IP addresses from a text and enriches them with
// geolocation data.
//
// A text is either given in command line or read from a file. Files
// can be plain or gzipped, a kind of file is detected by its content.
// Every IPv4 and IPv6 address is extracted from a text, so it can be
// anything: logs, CSV, JSON or a list of addresses separated by
// commas.
//
// Addresses are resolved one by one with a chosen provider. ip-api.com
// is used by default. Each record is printed to stdout as a JSON
// object, one object per line. Diagnostics are written to stderr.
//
//	chickadee --ips access.log.gz --unique --routable --columns query,countryCode,city
//
// Please see config.example.toml for configuration options.
package main
