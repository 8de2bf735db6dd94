package hosts

import (
	"fmt"
	"strings"
)

// Request asks for Host to resolve to Address. An empty Address removes the host.
type Request struct {
	Host    string `json:"host"`
	Address string `json:"address,omitempty"`
}

// IsRemoval reports whether the request removes its host.
func (r Request) IsRemoval() bool {
	return r.Address == ""
}

// Removals builds a removal request for each host.
func Removals(hostNames []string) []Request {
	requests := make([]Request, len(hostNames))
	for i, h := range hostNames {
		requests[i] = Request{Host: h}
	}
	return requests
}

// MergeResult is the outcome of Merge.
type MergeResult struct {
	Records []Record
	// Changed is true when Records differs from the input.
	Changed bool
}

// hostState tracks one request across the merge pass.
type hostState struct {
	// insertionPoint is the index of the record a new entry goes in front of,
	// or -1 to append at the end.
	insertionPoint int
	// done is set once some record satisfies the request as it stands.
	done bool
	// enableAt is the first disabled single-host entry that would satisfy
	// the request, or -1. It is enabled only if nothing else satisfies it.
	enableAt int
}

type action int

const (
	actionNone action = iota
	actionConfirm
	actionDisable
)

// Merge applies requests to records with the smallest edit that satisfies them.
//
// Requests are matched case-insensitively and deduplicated by host; for a
// repeated host the last address wins. Records are never deleted: active
// entries that conflict are disabled, a disabled single-host entry with the
// requested address is enabled when no active entry already satisfies the
// request, and hosts left unsatisfied get a new entry
// placed after the last record that referenced them (or at the end). New
// entries appear in request order. The input slice is not modified.
func Merge(records []Record, requests []Request) MergeResult {
	requests = dedupeRequests(requests)

	states := make([]hostState, len(requests))
	for j, req := range requests {
		states[j] = hostState{insertionPoint: -1, enableAt: -1, done: req.IsRemoval()}
	}

	merged := make([]Record, len(records))
	changed := false

	for i, rec := range records {
		merged[i] = rec

		var confirmed []int
		disable := false
		for j, req := range requests {
			var act action
			act, states[j] = decide(i, rec, req, states[j])
			switch act {
			case actionConfirm:
				confirmed = append(confirmed, j)
			case actionDisable:
				disable = true
			}
		}

		if disable {
			merged[i] = rec.(*ActiveEntry).Disable()
			changed = true
			continue
		}
		// A confirmation only counts if the entry stays active.
		for _, j := range confirmed {
			states[j].done = true
		}
	}

	// Enabling waits for the whole pass, so an active entry further down
	// still counts as satisfying the request.
	for j := range requests {
		if st := &states[j]; !st.done && st.enableAt >= 0 {
			merged[st.enableAt] = merged[st.enableAt].(*DisabledEntry).Enable()
			st.done = true
			changed = true
		}
	}

	inserts := make(map[int][]Record)
	for j, req := range requests {
		if states[j].done {
			continue
		}
		at := states[j].insertionPoint
		if at < 0 {
			at = len(records)
		}
		inserts[at] = append(inserts[at], NewActiveEntry(req.Address, req.Host))
		changed = true
	}

	if len(inserts) == 0 {
		return MergeResult{Records: merged, Changed: changed}
	}

	result := make([]Record, 0, len(merged)+len(requests))
	for i, rec := range merged {
		result = append(result, inserts[i]...)
		result = append(result, rec)
	}
	result = append(result, inserts[len(merged)]...)

	return MergeResult{Records: result, Changed: changed}
}

// decide applies one request to the record at index i as it was read.
func decide(i int, rec Record, req Request, st hostState) (action, hostState) {
	switch r := rec.(type) {
	case *ActiveEntry:
		if !r.ReferencesHost(req.Host) {
			return actionNone, st
		}
		st.insertionPoint = i + 1
		if !req.IsRemoval() && r.MatchesAddress(req.Address) {
			return actionConfirm, st
		}
		return actionDisable, st
	case *DisabledEntry:
		if !r.ReferencesHost(req.Host) {
			return actionNone, st
		}
		st.insertionPoint = i + 1
		// Enabling a multi-host line would also activate its other hosts.
		if st.enableAt < 0 && !req.IsRemoval() && r.MatchesAddress(req.Address) && r.ReferencesOnlyHost(req.Host) {
			st.enableAt = i
		}
		return actionNone, st
	case *CommentLine, *BlankLine, *InvalidLine:
		return actionNone, st
	default:
		panic(fmt.Sprintf("hosts: unknown record type %T", rec))
	}
}

// dedupeRequests keeps one request per host. The first occurrence fixes the
// position, the last one supplies the host casing and address.
func dedupeRequests(requests []Request) []Request {
	index := make(map[string]int, len(requests))
	result := make([]Request, 0, len(requests))
	for _, req := range requests {
		key := strings.ToLower(req.Host)
		if j, ok := index[key]; ok {
			result[j] = req
			continue
		}
		index[key] = len(result)
		result = append(result, req)
	}
	return result
}
