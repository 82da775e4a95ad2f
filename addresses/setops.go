package addresses

// Deduplicate returns addresses in the order of their first occurrence,
// dropping repeats.
func Deduplicate(addrs []Address) []Address {
	seen := make(map[addressKey]struct{}, len(addrs))
	rv := make([]Address, 0, len(addrs))

	for _, v := range addrs {
		key := v.key()

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		rv = append(rv, v)
	}

	return rv
}

// FilterRoutable drops unspecified, loopback and multicast addresses.
func FilterRoutable(addrs []Address) []Address {
	rv := make([]Address, 0, len(addrs))

	for _, v := range addrs {
		if IsRoutable(v) {
			rv = append(rv, v)
		}
	}

	return rv
}

// IsRoutable reports if address is not unspecified, not loopback and
// not multicast. IPv4-mapped IPv6 addresses are checked as IPv4.
func IsRoutable(addr Address) bool {
	ip := addr.addr

	switch addr.family {
	case FamilyV4:
	case FamilyV6:
		ip = ip.Unmap()
	default:
		return false
	}

	return !(ip.IsUnspecified() || ip.IsLoopback() || ip.IsMulticast())
}
