package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// MappingManager maintains static mappings and group memberships.
type MappingManager struct {
	mappings MappingRepository
	groups   GroupRepository
	log      zerolog.Logger
}

func NewMappingManager(mappings MappingRepository, groups GroupRepository, log zerolog.Logger) *MappingManager {
	return &MappingManager{
		mappings: mappings,
		groups:   groups,
		log:      log.With().Str("component", "mappings").Logger(),
	}
}

func (m *MappingManager) Map(ctx context.Context, mapping Mapping) error {
	if err := validateMapping(mapping); err != nil {
		return err
	}
	if err := m.mappings.InsertMapping(ctx, mapping); err != nil {
		m.log.Error().Err(err).Str("mac", mapping.MAC).Msg("map failed")
		return err
	}

	m.log.Info().Str("mac", mapping.MAC).Str("ip", mapping.IP).Str("hostname", mapping.Hostname).Msg("mapping created")
	return nil
}

func (m *MappingManager) Remap(ctx context.Context, mapping Mapping) error {
	if err := validateMapping(mapping); err != nil {
		return err
	}

	n, err := m.mappings.UpdateMapping(ctx, mapping)
	if err != nil {
		m.log.Error().Err(err).Str("mac", mapping.MAC).Msg("remap failed")
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: could not update static mapping, no entry for MAC address %s", ErrNotFound, mapping.MAC)
	}

	m.log.Info().Str("mac", mapping.MAC).Str("ip", mapping.IP).Str("hostname", mapping.Hostname).Msg("mapping updated")
	return nil
}

func (m *MappingManager) Unmap(ctx context.Context, mac string) error {
	if mac == "" {
		return fmt.Errorf("%w: a MAC address is required", ErrInvalidInput)
	}

	n, err := m.mappings.DeleteMapping(ctx, mac)
	if err != nil {
		m.log.Error().Err(err).Str("mac", mac).Msg("unmap failed")
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: could not delete static mapping, no entry for MAC address %s", ErrNotFound, mac)
	}

	m.log.Info().Str("mac", mac).Msg("mapping deleted")
	return nil
}

func (m *MappingManager) Mappings(ctx context.Context) ([]Mapping, error) {
	return m.mappings.ListMappings(ctx)
}

func (m *MappingManager) AddGroupMember(ctx context.Context, group, hostname string) error {
	if group == "" || hostname == "" {
		return fmt.Errorf("%w: group and hostname are required", ErrInvalidInput)
	}

	member := GroupMember{Group: group, Hostname: hostname}
	if err := m.groups.InsertGroupMember(ctx, member); err != nil {
		m.log.Error().Err(err).Str("group", group).Str("hostname", hostname).Msg("group add failed")
		return err
	}

	m.log.Info().Str("group", group).Str("hostname", hostname).Msg("group member added")
	return nil
}

func (m *MappingManager) RemoveGroupMember(ctx context.Context, group, hostname string) error {
	n, err := m.groups.DeleteGroupMember(ctx, GroupMember{Group: group, Hostname: hostname})
	if err != nil {
		m.log.Error().Err(err).Str("group", group).Str("hostname", hostname).Msg("group delete failed")
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: could not remove group member, no entry for group/hostname %s/%s", ErrNotFound, group, hostname)
	}

	m.log.Info().Str("group", group).Str("hostname", hostname).Msg("group member removed")
	return nil
}

func (m *MappingManager) GroupMembers(ctx context.Context) ([]GroupMember, error) {
	return m.groups.ListGroupMembers(ctx)
}

func validateMapping(mapping Mapping) error {
	if mapping.MAC == "" || mapping.IP == "" || mapping.Hostname == "" {
		return fmt.Errorf("%w: all three values are required: <macaddr> <ipaddr> <hostname>", ErrInvalidInput)
	}
	return nil
}
