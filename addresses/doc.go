// Package addresses finds IP addresses in free-form text and provides
// a set of filters over them.
//
// Address is a closed variant over IPv4 and IPv6. It can be produced
// only by parsing, so everything downstream (deduplication, routability
// checks, network filters) can rely on its validity.
//
// Extraction is lenient: addresses do not have to be delimited by
// whitespace, so 'a8.8.8.8a' yields 8.8.8.8. By default all IPv4
// matches are returned before IPv6 ones; OrderDocument keeps positional
// order instead.
package addresses
