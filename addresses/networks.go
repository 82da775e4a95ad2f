package addresses

import (
	"net/netip"

	cidrman "github.com/EvilSuperstars/go-cidrman"
	"github.com/asergeyev/nradix"
	"github.com/juju/errors"
)

// NetworkFilter drops addresses which belong to any of the given
// networks.
type NetworkFilter struct {
	tree     *nradix.Tree
	networks []string
}

// Networks returns a list of networks after normalization. Overlapping
// and adjacent IPv4 networks are merged.
func (n *NetworkFilter) Networks() []string {
	rv := make([]string, len(n.networks))
	copy(rv, n.networks)

	return rv
}

// Contains reports if an address is inside one of the networks.
func (n *NetworkFilter) Contains(addr Address) bool {
	if n == nil || !addr.IsValid() {
		return false
	}

	ip := addr.addr.WithZone("").Unmap()
	mask := "/128"

	if ip.Is4() {
		mask = "/32"
	}

	value, err := n.tree.FindCIDR(ip.String() + mask)

	return err == nil && value != nil
}

// Filter returns addresses which are not inside any network, keeping
// their order.
func (n *NetworkFilter) Filter(addrs []Address) []Address {
	rv := make([]Address, 0, len(addrs))

	for _, v := range addrs {
		if !n.Contains(v) {
			rv = append(rv, v)
		}
	}

	return rv
}

// NewNetworkFilter builds a filter from CIDR strings. A single address
// without a mask is treated as a host network.
func NewNetworkFilter(cidrs []string) (*NetworkFilter, error) {
	v4 := []string{}
	v6 := []string{}

	for _, v := range cidrs {
		prefix, err := parseNetwork(v)
		if err != nil {
			return nil, err
		}

		if prefix.Addr().Is4() {
			v4 = append(v4, prefix.String())
		} else {
			v6 = append(v6, prefix.String())
		}
	}

	if len(v4) > 0 {
		merged, err := cidrman.MergeCIDRs(v4)
		if err != nil {
			return nil, errors.Annotate(err, "cannot merge ipv4 networks")
		}

		v4 = merged
	}

	rv := &NetworkFilter{
		tree:     nradix.NewTree(0),
		networks: append(v4, v6...),
	}

	for _, v := range rv.networks {
		if err := rv.tree.AddCIDR(v, true); err != nil && err != nradix.ErrNodeBusy {
			return nil, errors.Annotatef(err, "cannot add network %s", v)
		}
	}

	return rv, nil
}

func parseNetwork(text string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(text)
	if err == nil {
		if prefix.Addr().Is4In6() && prefix.Bits() >= 96 {
			prefix = netip.PrefixFrom(prefix.Addr().Unmap(), prefix.Bits()-96)
		}

		return prefix.Masked(), nil
	}

	addr, errAddr := netip.ParseAddr(text)
	if errAddr != nil {
		return netip.Prefix{}, errors.Annotatef(err, "incorrect network %q", text)
	}

	addr = addr.WithZone("").Unmap()

	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
