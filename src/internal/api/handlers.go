package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

// HostStore is the part of hostsfile.HostWriter the API needs.
type HostStore interface {
	Path() string
	Records(ctx context.Context) ([]hosts.Record, error)
	Point(ctx context.Context, requests []hosts.Request) (bool, error)
	IsLocal(ctx context.Context, host string) (bool, error)
}

// Handler manages all API endpoints and dependencies.
type Handler struct {
	store HostStore
}

// NewHandler creates a new API handler backed by store.
func NewHandler(store HostStore) *Handler {
	return &Handler{store: store}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Debugf("Failed to encode response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body. Unknown fields are rejected.
func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
