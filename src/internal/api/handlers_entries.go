package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
)

// GetEntries returns active entries, optionally filtered.
// GET /api/v1/entries?host=<pattern>&address=<address>
//
// Both parameters are repeatable. An entry must match one of the host
// patterns (if any are given) and one of the addresses (if any are given).
func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	patterns := query["host"]
	addresses := query["address"]

	for _, address := range addresses {
		if !hosts.IsAddressLiteral(address) {
			WriteInvalidRequest(w, fmt.Sprintf("%q is not an IPv4 or IPv6 address", address))
			return
		}
	}

	records, err := h.store.Records(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	var entries []*hosts.ActiveEntry
	if len(patterns) > 0 {
		entries = hosts.Query(records, hosts.QueryByHost, patterns)
	} else {
		entries = hosts.ActiveEntries(records)
	}

	response := EntriesResponse{Entries: []EntryInfo{}}
	for _, entry := range entries {
		if len(addresses) > 0 && !matchesAny(entry, addresses) {
			continue
		}
		response.Entries = append(response.Entries, newEntryInfo(entry))
	}

	writeJSONData(w, response)
}

// Assign points hosts at addresses.
// PUT /api/v1/assignments
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}
	if err := hostsfile.ValidateRequests(req.Assignments, true); err != nil {
		WriteDomainError(w, err)
		return
	}

	changed, err := h.store.Point(r.Context(), req.Assignments)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, ChangeResponse{Changed: changed})
}

// Unassign disables the entries of hosts.
// DELETE /api/v1/assignments
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	var req UnassignRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}
	if err := hostsfile.ValidateHosts(req.Hosts); err != nil {
		WriteDomainError(w, err)
		return
	}

	changed, err := h.store.Point(r.Context(), hosts.Removals(req.Hosts))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, ChangeResponse{Changed: changed})
}

// GetLocal reports whether a host points at this machine.
// GET /api/v1/hosts/{host}/local
func (h *Handler) GetLocal(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")

	local, err := h.store.IsLocal(r.Context(), host)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, LocalResponse{Host: host, Local: local})
}

func matchesAny(entry *hosts.ActiveEntry, addresses []string) bool {
	for _, address := range addresses {
		if entry.MatchesAddress(address) {
			return true
		}
	}
	return false
}
