package addresses

import (
	"net"
	"net/netip"

	"github.com/juju/errors"
)

// Family is an address family tag of Address.
type Family uint8

const (
	// FamilyV4 marks IPv4 addresses.
	FamilyV4 Family = iota + 1

	// FamilyV6 marks IPv6 addresses, including IPv4-mapped ones
	// written in IPv6 notation.
	FamilyV6
)

func (f Family) String() string {
	switch f {
	case FamilyV4:
		return "ipv4"
	case FamilyV6:
		return "ipv6"
	}

	return "unknown"
}

// Address is a validated IPv4 or IPv6 value. A zero Address is invalid;
// the only way to get a valid one is ParseAddress or extraction from
// text.
type Address struct {
	family Family
	addr   netip.Addr
}

// Family returns a family tag of the address.
func (a Address) Family() Family {
	return a.family
}

// IsValid reports if address was constructed by parsing.
func (a Address) IsValid() bool {
	return a.family != 0
}

// Addr returns an underlying netip value.
func (a Address) Addr() netip.Addr {
	return a.addr
}

// IP returns a net.IP for libraries which still work with it.
func (a Address) IP() net.IP {
	return net.IP(a.addr.AsSlice())
}

func (a Address) String() string {
	return a.addr.String()
}

// Equal compares addresses by family and bits. Zones are not taken
// into account.
func (a Address) Equal(other Address) bool {
	return a.key() == other.key()
}

func (a Address) key() addressKey {
	return addressKey{
		family: a.family,
		addr:   a.addr.WithZone(""),
	}
}

type addressKey struct {
	family Family
	addr   netip.Addr
}

// ParseAddress parses a textual IPv4 or IPv6 address. IPv6 zones are
// kept only for link-local unicast addresses.
func ParseAddress(text string) (Address, error) {
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return Address{}, errors.Annotatef(err, "incorrect address %q", text)
	}

	switch {
	case addr.Is4():
		return Address{family: FamilyV4, addr: addr}, nil
	case addr.Zone() != "" && !addr.IsLinkLocalUnicast():
		addr = addr.WithZone("")
	}

	return Address{family: FamilyV6, addr: addr}, nil
}

// MustParseAddress is ParseAddress which panics on errors. It is
// intended for constants and tests.
func MustParseAddress(text string) Address {
	addr, err := ParseAddress(text)
	if err != nil {
		panic(err)
	}

	return addr
}
