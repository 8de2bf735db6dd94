package api

import (
	"fmt"
	"net/http"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/utils"
)

// CheckHealth reports whether the hosts file can be read and written.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy:   true,
		HostsFile: h.store.Path(),
		Checks:    make(map[string]CheckResult),
	}

	records, err := h.store.Records(r.Context())
	if err != nil {
		response.Healthy = false
		response.Checks["hosts_readable"] = CheckResult{
			Passed:  false,
			Message: "Failed to read hosts file: " + err.Error(),
		}
	} else {
		response.Checks["hosts_readable"] = CheckResult{
			Passed:  true,
			Message: fmt.Sprintf("%d active entries", len(hosts.ActiveEntries(records))),
		}
	}

	if utils.IsWritable(h.store.Path()) {
		response.Checks["hosts_writable"] = CheckResult{
			Passed:  true,
			Message: "Hosts file is writable",
		}
	} else {
		response.Healthy = false
		response.Checks["hosts_writable"] = CheckResult{
			Passed:  false,
			Message: "Hosts file is not writable",
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
