package inventory

import "context"

// View is the read side of the inventory. Every call recomputes the host view
// from the repository.
type View struct {
	hosts HostRepository
}

func NewView(hosts HostRepository) *View {
	return &View{hosts: hosts}
}

func (v *View) Hosts(ctx context.Context) ([]Host, error) {
	return v.hosts.Hosts(ctx)
}

func (v *View) List(ctx context.Context, f Filter) ([]Host, error) {
	hosts, err := v.hosts.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	return Select(hosts, f), nil
}

func (v *View) Groups(ctx context.Context, useIP, onlyActive bool) (map[string][]string, error) {
	hosts, err := v.hosts.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	return GroupListing(hosts, useIP, onlyActive), nil
}

// Known returns the hosts that have a static mapping, leased or not.
func (v *View) Known(ctx context.Context) ([]Host, error) {
	hosts, err := v.hosts.Hosts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Host, 0, len(hosts))
	for _, h := range hosts {
		if h.Known() {
			out = append(out, h)
		}
	}
	return out, nil
}
