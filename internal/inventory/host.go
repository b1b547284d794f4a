package inventory

import (
	"sort"
	"strings"
)

// Known reports whether the host has a static mapping.
func (h Host) Known() bool {
	return h.MappingIP != ""
}

// Active reports whether the host currently holds a recorded lease.
func (h Host) Active() bool {
	return h.LeaseIP != ""
}

// Conformant reports whether the active lease matches the mapping exactly.
func (h Host) Conformant() bool {
	return h.Known() && h.Active() &&
		h.LeaseIP == h.MappingIP &&
		h.LeaseHostname == h.MappingHostname
}

// Address is the lease IP for active hosts, the mapping IP otherwise.
func (h Host) Address() string {
	if h.Active() {
		return h.LeaseIP
	}
	return h.MappingIP
}

// Name is the lease hostname when the client reported one, the mapping
// hostname otherwise.
func (h Host) Name() string {
	if h.Active() && h.LeaseHostname != "" {
		return h.LeaseHostname
	}
	return h.MappingHostname
}

// Remediation returns the intended ip/hostname of an active, known host whose
// lease disagrees with its mapping. ok is false for every other host.
func (h Host) Remediation() (ip, hostname string, ok bool) {
	if !h.Active() || !h.Known() || h.Conformant() {
		return "", "", false
	}
	return h.MappingIP, h.MappingHostname, true
}

// Flags lists the positive states of the host in a fixed order.
func (h Host) Flags() []string {
	var flags []string
	if h.Active() {
		flags = append(flags, "active")
	}
	if h.Known() {
		flags = append(flags, "known")
	}
	if h.Conformant() {
		flags = append(flags, "conformant")
	}
	return flags
}

func (h Host) GroupSet() Set {
	return NewSet(strings.Split(h.Groups, ",")...)
}

// Set is a set of strings. Empty strings are never members.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Intersects reports whether s and other share at least one member.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for item := range small {
		if large.Has(item) {
			return true
		}
	}
	return false
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
