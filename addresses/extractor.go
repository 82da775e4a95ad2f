package addresses

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Order defines how matches of both families are arranged in the
// extraction result.
type Order uint8

const (
	// OrderFamily returns all IPv4 matches first and all IPv6 matches
	// after them. Each group keeps left-to-right order.
	OrderFamily Order = iota

	// OrderDocument returns matches of both families in the order of
	// their appearance in a text.
	OrderDocument
)

const (
	reOctet = `(?:25[0-5]|(?:2[0-4]|1{0,1}[0-9]){0,1}[0-9])`
	reIPv4  = `(?:` + reOctet + `\.){3}` + reOctet
	reH16   = `[0-9a-fA-F]{1,4}`
	reLS32  = `(?:` + reH16 + `:` + reH16 + `|` + reIPv4 + `)`
	reZone  = `(?:%[0-9A-Za-z._~\-]+)?`
)

var (
	ipv4Regexp = regexp.MustCompile(reIPv4)
	ipv6Regexp = compileIPv6Regexp()
)

// compileIPv6Regexp builds the IPv6address production from RFC 3986
// section 3.2.2. Leftmost-longest semantics is required: with
// alternation order alone '2001:db8::1' would be cut at '::'.
func compileIPv6Regexp() *regexp.Regexp {
	h16c := func(min, max int) string {
		return repeat(reH16+`:`, min, max)
	}
	prefix := func(n int) string {
		if n == 0 {
			return ``
		}

		return `(?:` + repeat(reH16+`:`, 0, n) + reH16 + `)?`
	}

	alternatives := []string{
		h16c(6, 6) + reLS32,
		`::` + h16c(5, 5) + reLS32,
		`(?:` + reH16 + `)?::` + h16c(4, 4) + reLS32,
		prefix(1) + `::` + h16c(3, 3) + reLS32,
		prefix(2) + `::` + h16c(2, 2) + reLS32,
		prefix(3) + `::` + reH16 + `:` + reLS32,
		prefix(4) + `::` + reLS32,
		prefix(5) + `::` + reH16,
		prefix(6) + `::`,
	}

	rex := regexp.MustCompile(`(?:` + strings.Join(alternatives, `|`) + `)` + reZone)
	rex.Longest()

	return rex
}

func repeat(expr string, min, max int) string {
	if min == max {
		if min == 1 {
			return `(?:` + expr + `)`
		}

		return `(?:` + expr + `){` + strconv.Itoa(min) + `}`
	}

	return `(?:` + expr + `){` + strconv.Itoa(min) + `,` + strconv.Itoa(max) + `}`
}

// Extractor finds IPv4 and IPv6 addresses in unstructured text.
type Extractor struct {
	Order Order
}

// Extract returns every address found in text without deduplication.
// Matches which cannot be parsed are silently skipped.
func (e Extractor) Extract(text string) []Address {
	v4 := findAll(ipv4Regexp, text, nil)
	v6 := findAll(ipv6Regexp, text, followedByWord)
	rv := make([]Address, 0, len(v4)+len(v6))

	if e.Order == OrderDocument {
		merged := append(v4, v6...)

		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].position < merged[j].position
		})

		for _, v := range merged {
			rv = append(rv, v.addr)
		}

		return rv
	}

	for _, v := range v4 {
		rv = append(rv, v.addr)
	}

	for _, v := range v6 {
		rv = append(rv, v.addr)
	}

	return rv
}

// Extract is a shortcut for Extractor with a default order.
func Extract(text string) []Address {
	return Extractor{}.Extract(text)
}

type match struct {
	position int
	addr     Address
}

func findAll(rex *regexp.Regexp, text string, reject func(string, int) bool) []match {
	indexes := rex.FindAllStringIndex(text, -1)
	rv := make([]match, 0, len(indexes))

	for _, idx := range indexes {
		if reject != nil && reject(text, idx[1]) {
			continue
		}

		addr, err := ParseAddress(text[idx[0]:idx[1]])
		if err != nil {
			continue
		}

		rv = append(rv, match{
			position: idx[0],
			addr:     addr,
		})
	}

	return rv
}

// followedByWord reports if a match is cut from an identifier like
// std::vector or Foo::Bar: next character is a letter which cannot be
// a hex digit.
func followedByWord(text string, end int) bool {
	if end >= len(text) {
		return false
	}

	c := text[end]

	return c == '_' || ('g' <= c && c <= 'z') || ('G' <= c && c <= 'Z')
}
