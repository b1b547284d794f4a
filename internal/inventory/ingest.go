package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

type IngestOptions struct {
	// UpdateOnMismatch makes Restate correct a stored lease whose ip or
	// hostname differs from the restated one. Off by default: a restated
	// lease is trusted to match what was recorded earlier.
	UpdateOnMismatch bool
}

// LeaseIngester applies lease lifecycle events reported by the DHCP daemon.
type LeaseIngester struct {
	leases LeaseRepository
	opts   IngestOptions
	log    zerolog.Logger
}

func NewLeaseIngester(leases LeaseRepository, opts IngestOptions, log zerolog.Logger) *LeaseIngester {
	return &LeaseIngester{
		leases: leases,
		opts:   opts,
		log:    log.With().Str("component", "ingest").Logger(),
	}
}

// Grant records a new lease. It fails with ErrDuplicateKey when the MAC
// already holds one.
func (i *LeaseIngester) Grant(ctx context.Context, mac, ip, hostname string) error {
	lease := Lease{MAC: mac, IP: ip, Hostname: hostname}
	if err := i.leases.InsertLease(ctx, lease); err != nil {
		i.log.Error().Err(err).Str("mac", mac).Msg("grant failed")
		return err
	}

	i.log.Info().Str("mac", mac).Str("ip", ip).Str("hostname", hostname).Msg("lease granted")
	return nil
}

// Restate records a lease the daemon reports as already known, e.g. after a
// restart. A duplicate MAC is treated as success; any other error is returned.
func (i *LeaseIngester) Restate(ctx context.Context, mac, ip, hostname string) error {
	lease := Lease{MAC: mac, IP: ip, Hostname: hostname}

	err := i.leases.InsertLease(ctx, lease)
	if err == nil {
		i.log.Info().Str("mac", mac).Str("ip", ip).Msg("restated lease recorded")
		return nil
	}
	if !errors.Is(err, ErrDuplicateKey) {
		i.log.Error().Err(err).Str("mac", mac).Msg("restate failed")
		return err
	}

	if !i.opts.UpdateOnMismatch {
		i.log.Debug().Str("mac", mac).Msg("lease already recorded")
		return nil
	}

	return i.reconcile(ctx, lease)
}

func (i *LeaseIngester) reconcile(ctx context.Context, lease Lease) error {
	stored, err := i.leases.FindLease(ctx, lease.MAC)
	if err != nil {
		return err
	}
	if stored == lease {
		return nil
	}

	n, err := i.leases.UpdateLease(ctx, lease)
	if err != nil {
		return err
	}
	if n < 1 {
		// released between the insert and the update
		return fmt.Errorf("%w: could not update lease for MAC address %s", ErrNotFound, lease.MAC)
	}

	i.log.Warn().
		Str("mac", lease.MAC).
		Str("old_ip", stored.IP).
		Str("ip", lease.IP).
		Str("old_hostname", stored.Hostname).
		Str("hostname", lease.Hostname).
		Msg("stale lease corrected")
	return nil
}

// Release removes the lease for mac. It fails with ErrNotFound when there is
// no such lease.
func (i *LeaseIngester) Release(ctx context.Context, mac string) error {
	n, err := i.leases.DeleteLease(ctx, mac)
	if err != nil {
		i.log.Error().Err(err).Str("mac", mac).Msg("release failed")
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: could not remove lease, no entry for MAC address %s", ErrNotFound, mac)
	}

	i.log.Info().Str("mac", mac).Msg("lease released")
	return nil
}
