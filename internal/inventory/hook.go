package inventory

import (
	"context"
	"fmt"
)

// Hook verbs sent by the DHCP daemon's lease script.
const (
	VerbAdd = "add"
	VerbOld = "old"
	VerbDel = "del"
)

// HookHandler translates lease script invocations into ingestion calls.
type HookHandler struct {
	ingester *LeaseIngester
}

func NewHookHandler(ingester *LeaseIngester) *HookHandler {
	return &HookHandler{ingester: ingester}
}

// Handles reports whether verb is a lease event this handler acts on. The
// daemon also runs the script for events such as init or tftp.
func (h *HookHandler) Handles(verb string) bool {
	switch verb {
	case VerbAdd, VerbOld, VerbDel:
		return true
	}
	return false
}

// Handle applies one event. args are the positional arguments following the
// verb: mac, ip and an optional hostname for add/old, mac for del.
func (h *HookHandler) Handle(ctx context.Context, verb string, args []string) error {
	switch verb {
	case VerbAdd, VerbOld:
		if len(args) < 2 || args[0] == "" || args[1] == "" {
			return fmt.Errorf("%w: %s requires <macaddr> <ipaddr> [hostname]", ErrInvalidInput, verb)
		}
		mac, ip, hostname := args[0], args[1], ""
		if len(args) > 2 {
			hostname = args[2]
		}
		if verb == VerbAdd {
			return h.ingester.Grant(ctx, mac, ip, hostname)
		}
		return h.ingester.Restate(ctx, mac, ip, hostname)

	case VerbDel:
		if len(args) < 1 || args[0] == "" {
			return fmt.Errorf("%w: del requires <macaddr>", ErrInvalidInput)
		}
		return h.ingester.Release(ctx, args[0])
	}

	return fmt.Errorf("%w: unsupported verb %q", ErrInvalidInput, verb)
}
