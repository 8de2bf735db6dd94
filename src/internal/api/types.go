package api

import "github.com/maksimkurb/hostfile/src/internal/hosts"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// EntryInfo is one active hosts file entry.
type EntryInfo struct {
	Address string   `json:"address"`
	Hosts   []string `json:"hosts"`
	Comment string   `json:"comment,omitempty"`
}

// EntriesResponse returns active entries in file order.
type EntriesResponse struct {
	Entries []EntryInfo `json:"entries"`
}

// AssignRequest points each host at its address.
type AssignRequest struct {
	Assignments []hosts.Request `json:"assignments"`
}

// UnassignRequest disables every active entry of the listed hosts.
type UnassignRequest struct {
	Hosts []string `json:"hosts"`
}

// ChangeResponse reports whether the hosts file was rewritten.
type ChangeResponse struct {
	Changed bool `json:"changed"`
}

// LocalResponse reports whether a host resolves to this machine.
type LocalResponse struct {
	Host  string `json:"host"`
	Local bool   `json:"local"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy   bool                   `json:"healthy"`
	HostsFile string                 `json:"hosts_file"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

func newEntryInfo(entry *hosts.ActiveEntry) EntryInfo {
	return EntryInfo{
		Address: entry.Address,
		Hosts:   entry.Hosts,
		Comment: entry.Comment,
	}
}
