package store

// Statements are executed one at a time so both drivers accept them.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS leases (
    mac TEXT PRIMARY KEY,
    ip TEXT NOT NULL,
    hostname TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS mappings (
    mac TEXT PRIMARY KEY,
    ip TEXT NOT NULL,
    hostname TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1,
    comment TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS group_members (
    "group" TEXT NOT NULL,
    hostname TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_hostname ON group_members(hostname)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS leases (
    mac TEXT PRIMARY KEY,
    ip TEXT NOT NULL,
    hostname TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS mappings (
    mac TEXT PRIMARY KEY,
    ip TEXT NOT NULL,
    hostname TEXT NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT TRUE,
    comment TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS group_members (
    "group" TEXT NOT NULL,
    hostname TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_hostname ON group_members(hostname)`,
}

// hostsQuery emulates a full outer join of leases and mappings on mac with a
// UNION of two left outer joins, then attaches the groups whose members match
// the mapping hostname. The grouping tuple keeps one row per host no matter
// how many groups it belongs to. lease_hostname is determined by mac, so it is
// aggregated rather than grouped on. The %s verb is the dialect's string
// aggregate over group_members."group".
const hostsQuery = `
SELECT hosts.mac, hosts.lease_ip, MAX(hosts.lease_hostname), hosts.mapping_ip, hosts.mapping_hostname,
       %s AS group_list
FROM (
    SELECT leases.mac AS mac, leases.ip AS lease_ip, leases.hostname AS lease_hostname,
           mappings.ip AS mapping_ip, mappings.hostname AS mapping_hostname
    FROM leases LEFT OUTER JOIN mappings ON leases.mac = mappings.mac
    UNION
    SELECT mappings.mac AS mac, leases.ip AS lease_ip, leases.hostname AS lease_hostname,
           mappings.ip AS mapping_ip, mappings.hostname AS mapping_hostname
    FROM mappings LEFT OUTER JOIN leases ON mappings.mac = leases.mac
) hosts
LEFT OUTER JOIN group_members ON hosts.mapping_hostname = group_members.hostname
GROUP BY hosts.mac, group_members.hostname, hosts.lease_ip, hosts.mapping_hostname, hosts.mapping_ip
ORDER BY hosts.mac`
