package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

const (
	colorGreen  = "#50FA7B"
	colorYellow = "#F1FA8C"
	colorRed    = "#FF5555"
	colorGrey   = "#6272A4"
)

type state int

const (
	stateConformant state = iota
	stateInactive
	stateUnknown
	stateWarning
)

// stateOf picks the display state; earlier checks win.
func stateOf(h inventory.Host) state {
	switch {
	case h.Conformant():
		return stateConformant
	case !h.Active():
		return stateInactive
	case !h.Known():
		return stateUnknown
	default:
		return stateWarning
	}
}

type HostRenderer struct {
	color  bool
	styles map[state]lipgloss.Style
}

func NewHostRenderer(color bool) *HostRenderer {
	return &HostRenderer{
		color: color,
		styles: map[state]lipgloss.Style{
			stateConformant: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
			stateInactive:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGrey)),
			stateUnknown:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
			stateWarning:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		},
	}
}

// Line formats one host as
//
//	mac addr name [flags] (mapping: mac ip hostname) (groups: a,b)
//
// The mapping hint only appears for active, known hosts that do not conform.
func (r *HostRenderer) Line(h inventory.Host) string {
	var b strings.Builder
	b.WriteString(h.MAC + " " + h.Address() + " " + h.Name())
	b.WriteString(" [" + strings.Join(h.Flags(), ",") + "]")

	if ip, hostname, ok := h.Remediation(); ok {
		b.WriteString(" (mapping: " + h.MAC + " " + ip + " " + hostname + ")")
	}
	if h.Groups != "" {
		b.WriteString(" (groups: " + h.Groups + ")")
	}

	if !r.color {
		return b.String()
	}
	return r.styles[stateOf(h)].Render(b.String())
}

func (r *HostRenderer) Render(hosts []inventory.Host) string {
	lines := make([]string, 0, len(hosts))
	for _, h := range hosts {
		lines = append(lines, r.Line(h))
	}
	return strings.Join(lines, "\n")
}

func RenderMappings(mappings []inventory.Mapping) string {
	lines := make([]string, 0, len(mappings))
	for _, m := range mappings {
		line := m.MAC + " " + m.IP + " " + m.Hostname
		if !m.Enabled {
			line += " [disabled]"
		}
		if m.Comment != "" {
			line += " # " + m.Comment
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func RenderGroupMembers(members []inventory.GroupMember) string {
	lines := make([]string, 0, len(members))
	for _, g := range members {
		lines = append(lines, g.Group+" "+g.Hostname)
	}
	return strings.Join(lines, "\n")
}
