package inventory

type Lease struct {
	MAC      string `json:"mac"`
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

type Mapping struct {
	MAC      string `json:"mac"`
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
	Enabled  bool   `json:"enabled"`
	Comment  string `json:"comment"`
}

type GroupMember struct {
	Group    string `json:"group"`
	Hostname string `json:"hostname"`
}

// Host is one row of the reconciled view. Columns missing on either side of
// the join are empty strings. Groups is the comma-joined list of groups whose
// members match MappingHostname.
type Host struct {
	MAC             string `json:"mac"`
	LeaseIP         string `json:"lease_ip"`
	LeaseHostname   string `json:"lease_hostname"`
	MappingIP       string `json:"mapping_ip"`
	MappingHostname string `json:"mapping_hostname"`
	Groups          string `json:"groups"`
}
