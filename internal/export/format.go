package export

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

// Format renders known hosts into the configuration language of a consuming
// service. Render receives only hosts with a static mapping.
type Format interface {
	Name() string
	Render(hosts []inventory.Host) string
}

type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

func NewRegistry(formats ...Format) *Registry {
	r := &Registry{formats: make(map[string]Format)}
	for _, f := range formats {
		r.Register(f)
	}
	return r
}

// Register adds f, replacing any format registered under the same name.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[f.Name()] = f
}

func (r *Registry) Lookup(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", inventory.ErrUnknownFormat, name, strings.Join(r.namesLocked(), ", "))
	}
	return f, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const DefaultFormat = "dnsmasq"

// DefaultRegistry holds the built-in formats.
func DefaultRegistry() *Registry {
	return NewRegistry(Dnsmasq{}, Hosts{})
}

// Dnsmasq renders one dhcp-host directive per host.
type Dnsmasq struct{}

func (Dnsmasq) Name() string { return "dnsmasq" }

func (Dnsmasq) Render(hosts []inventory.Host) string {
	lines := make([]string, 0, len(hosts))
	for _, h := range hosts {
		lines = append(lines, "dhcp-host="+strings.Join([]string{h.MAC, h.MappingIP, h.MappingHostname}, ","))
	}
	return strings.Join(lines, "\n")
}

// Hosts renders an /etc/hosts style table for resolvers that read addn-hosts.
type Hosts struct{}

func (Hosts) Name() string { return "hosts" }

func (Hosts) Render(hosts []inventory.Host) string {
	lines := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h.MappingHostname == "" {
			continue
		}
		lines = append(lines, h.MappingIP+"\t"+h.MappingHostname)
	}
	return strings.Join(lines, "\n")
}
