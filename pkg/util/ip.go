package util

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ErrInvalidAddress is returned (wrapped) by ParseAddress for any string that
// is not a bare IP address or CIDR prefix.
var ErrInvalidAddress = errors.New("invalid IP address")

// Address is the result of a successful ParseAddress call.
type Address struct {
	Family   int          // 4 or 6
	Prefix   netip.Prefix // bare addresses become a host prefix (/32 or /128)
	IsPrefix bool         // true when the input carried a /mask
}

// String returns the address in the form it was given (with or without mask).
func (a Address) String() string {
	if a.IsPrefix {
		return a.Prefix.String()
	}
	return a.Prefix.Addr().String()
}

// ParseAddress parses s as an IPv4/IPv6 address or CIDR prefix.
//
// Host bits in a prefix are preserved ("10.1.1.1/24" is accepted as given).
// Zoned IPv6 addresses are rejected. An IPv4-mapped IPv6 address is family 6.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}

	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, s)
		}
		return Address{Family: family(p.Addr()), Prefix: p, IsPrefix: true}, nil
	}

	a, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, s)
	}
	if a.Zone() != "" {
		return Address{}, fmt.Errorf("%w: zoned address %s", ErrInvalidAddress, s)
	}
	return Address{Family: family(a), Prefix: netip.PrefixFrom(a, a.BitLen())}, nil
}

func family(a netip.Addr) int {
	if a.Is4() {
		return 4
	}
	return 6
}

// IsValidIPv4 checks if a string is a valid bare IPv4 address
func IsValidIPv4(s string) bool {
	a, err := ParseAddress(s)
	return err == nil && !a.IsPrefix && a.Family == 4
}

// IsValidIPv6 checks if a string is a valid bare IPv6 address
func IsValidIPv6(s string) bool {
	a, err := ParseAddress(s)
	return err == nil && !a.IsPrefix && a.Family == 6
}
