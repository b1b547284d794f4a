package inventory

import "strings"

// Filter selects hosts for listing. Criteria combine with OR: a host passes
// when any one of them matches. A zero Filter passes every host.
type Filter struct {
	Active        bool
	Inactive      bool
	Known         bool
	Unknown       bool
	Conformant    bool
	Nonconformant bool
	Groups        []string
}

func (f Filter) Empty() bool {
	return !f.Active && !f.Inactive && !f.Known && !f.Unknown &&
		!f.Conformant && !f.Nonconformant && len(NewSet(f.Groups...)) == 0
}

// Match evaluates f against a single host. Callers that test many hosts
// should use Select, which builds the requested group set once.
func (f Filter) Match(h Host) bool {
	return f.matcher().match(h)
}

type matcher struct {
	filter Filter
	groups Set
	all    bool
}

func (f Filter) matcher() matcher {
	return matcher{filter: f, groups: NewSet(f.Groups...), all: f.Empty()}
}

func (m matcher) match(h Host) bool {
	if m.all {
		return true
	}

	f := m.filter
	active, known, conformant := h.Active(), h.Known(), h.Conformant()
	switch {
	case f.Active && active,
		f.Inactive && !active,
		f.Known && known,
		f.Unknown && !known,
		f.Conformant && conformant,
		f.Nonconformant && !conformant:
		return true
	}

	return len(m.groups) > 0 && m.groups.Intersects(h.GroupSet())
}

// Select drops hosts that are neither known nor active, then keeps the hosts
// matching f. Order is preserved.
func Select(hosts []Host, f Filter) []Host {
	m := f.matcher()

	out := make([]Host, 0, len(hosts))
	for _, h := range hosts {
		if !h.Known() && !h.Active() {
			continue
		}
		if m.match(h) {
			out = append(out, h)
		}
	}
	return out
}

// GroupListing maps every group name to the addresses of its known member
// hosts. With useIP the address is the host IP, otherwise the hostname; lease
// values win over mapping values. Hosts without groups are not represented.
func GroupListing(hosts []Host, useIP, onlyActive bool) map[string][]string {
	groups := make(map[string][]string)
	seen := make(map[string]Set)

	for _, h := range hosts {
		if onlyActive && !h.Active() {
			continue
		}
		if !h.Known() || h.Groups == "" {
			continue
		}

		addr := h.Name()
		if useIP {
			addr = h.Address()
		}

		for _, group := range strings.Split(h.Groups, ",") {
			if group == "" {
				continue
			}
			if seen[group] == nil {
				seen[group] = NewSet()
			}
			if seen[group].Has(addr) {
				continue
			}
			seen[group][addr] = struct{}{}
			groups[group] = append(groups[group], addr)
		}
	}

	return groups
}
