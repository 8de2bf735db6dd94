package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/ratelimit"
)

const fixture = "\n" +
	"127.0.0.1   example.com\n" +
	"127.0.0.1   other.com\n" +
	"62.35.73.2  third.com"

func newTestStore(t *testing.T, content string) *hostsfile.HostWriter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return hostsfile.NewHostWriter(path, hostsfile.WithLineSink(hostsfile.AtomicFileSink{EOL: "\n"}))
}

func readHosts(t *testing.T, store *hostsfile.HostWriter) string {
	t.Helper()
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "127.0.0.1:40000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", envelope.Data, err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp.Error
}

func TestGetEntries(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantHosts []string
	}{
		{name: "all", query: "", wantHosts: []string{"example.com", "other.com", "third.com"}},
		{name: "by host pattern", query: "?host=ex*", wantHosts: []string{"example.com"}},
		{name: "by address", query: "?address=127.0.0.1", wantHosts: []string{"example.com", "other.com"}},
		{name: "host and address", query: "?host=*.com&address=62.35.73.2", wantHosts: []string{"third.com"}},
		{name: "repeated host", query: "?host=third.com&host=other.com", wantHosts: []string{"other.com", "third.com"}},
		{name: "no match", query: "?host=nope", wantHosts: nil},
	}

	router := NewRouter(newTestStore(t, fixture), RouterOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/api/v1/entries"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}

			var resp EntriesResponse
			decodeData(t, rec, &resp)
			var got []string
			for _, e := range resp.Entries {
				got = append(got, e.Hosts...)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantHosts, ",") {
				t.Errorf("hosts = %v, want %v", got, tt.wantHosts)
			}
		})
	}
}

func TestGetEntriesInvalidAddress(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{})
	rec := doRequest(t, router, http.MethodGet, "/api/v1/entries?address=puppies", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != ErrCodeInvalidRequest {
		t.Errorf("code = %s, want %s", got, ErrCodeInvalidRequest)
	}
}

func TestGetEntriesReadFailure(t *testing.T) {
	store := hostsfile.NewHostWriter(filepath.Join(t.TempDir(), "missing"))
	rec := doRequest(t, NewRouter(store, RouterOptions{}), http.MethodGet, "/api/v1/entries", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != ErrCodeReadFailed {
		t.Errorf("code = %s, want %s", got, ErrCodeReadFailed)
	}
}

func TestAssignAndUnassign(t *testing.T) {
	store := newTestStore(t, fixture)
	router := NewRouter(store, RouterOptions{})

	body := `{"assignments":[{"host":"example.com","address":"68.23.67.72"}]}`
	rec := doRequest(t, router, http.MethodPut, "/api/v1/assignments", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var change ChangeResponse
	decodeData(t, rec, &change)
	if !change.Changed {
		t.Error("expected changed = true")
	}

	want := "\n" +
		"#127.0.0.1   example.com\n" +
		"68.23.67.72  example.com\n" +
		"127.0.0.1    other.com\n" +
		"62.35.73.2   third.com"
	if got := readHosts(t, store); got != want {
		t.Errorf("hosts file =\n%q\nwant\n%q", got, want)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/v1/assignments", body)
	decodeData(t, rec, &change)
	if change.Changed {
		t.Error("repeating an assignment should not change the file")
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/assignments", `{"hosts":["other.com"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	decodeData(t, rec, &change)
	if !change.Changed {
		t.Error("expected changed = true")
	}
	if !strings.Contains(readHosts(t, store), "#127.0.0.1   other.com") {
		t.Errorf("other.com not disabled:\n%s", readHosts(t, store))
	}
}

func TestAssignInvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
	}{
		{name: "missing address", method: http.MethodPut, body: `{"assignments":[{"host":"a.com"}]}`},
		{name: "bad address", method: http.MethodPut, body: `{"assignments":[{"host":"a.com","address":"x"}]}`},
		{name: "empty list", method: http.MethodPut, body: `{"assignments":[]}`},
		{name: "unknown field", method: http.MethodPut, body: `{"assignment":[]}`},
		{name: "malformed json", method: http.MethodPut, body: `{`},
		{name: "no hosts to remove", method: http.MethodDelete, body: `{"hosts":[]}`},
		{name: "host with space", method: http.MethodDelete, body: `{"hosts":["a b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, fixture)
			rec := doRequest(t, NewRouter(store, RouterOptions{}), tt.method, "/api/v1/assignments", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if got := decodeError(t, rec).Code; got != ErrCodeInvalidRequest {
				t.Errorf("code = %s, want %s", got, ErrCodeInvalidRequest)
			}
			if readHosts(t, store) != fixture {
				t.Error("hosts file modified by an invalid request")
			}
		})
	}
}

func TestGetLocal(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{})

	tests := []struct {
		host string
		want bool
	}{
		{host: "example.com", want: true},
		{host: "third.com", want: false},
		{host: "unknown.com", want: false},
	}
	for _, tt := range tests {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/hosts/"+tt.host+"/local", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.host, rec.Code)
		}
		var resp LocalResponse
		decodeData(t, rec, &resp)
		if resp.Host != tt.host || resp.Local != tt.want {
			t.Errorf("%s: got %+v, want local=%v", tt.host, resp, tt.want)
		}
	}
}

func TestCheckHealth(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{})
	rec := doRequest(t, router, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp HealthCheckResponse
	decodeData(t, rec, &resp)
	if !resp.Healthy || !resp.Checks["hosts_readable"].Passed {
		t.Errorf("unexpected health: %+v", resp)
	}

	missing := hostsfile.NewHostWriter(filepath.Join(t.TempDir(), "missing"))
	rec = doRequest(t, NewRouter(missing, RouterOptions{}), http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPrivateSubnetOnly(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{PrivateOnly: true})

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      int
	}{
		{name: "loopback", remote: "127.0.0.1:1234", want: http.StatusOK},
		{name: "private", remote: "192.168.1.20:1234", want: http.StatusOK},
		{name: "ipv6 ula", remote: "[fd00::1]:1234", want: http.StatusOK},
		{name: "public", remote: "8.8.8.8:1234", want: http.StatusForbidden},
		{name: "public behind local proxy", remote: "127.0.0.1:1234", forwarded: "8.8.8.8", want: http.StatusForbidden},
		{name: "spoofed header from public client", remote: "8.8.8.8:1234", forwarded: "10.0.0.1", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(0.001, 1)
	defer limiter.Close()
	router := NewRouter(newTestStore(t, fixture), RouterOptions{Limiter: limiter})

	if rec := doRequest(t, router, http.MethodGet, "/api/v1/entries", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := doRequest(t, router, http.MethodGet, "/api/v1/entries", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != ErrCodeRateLimited {
		t.Errorf("code = %s, want %s", got, ErrCodeRateLimited)
	}
}

func TestRequestID(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/entries", "")
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing generated request ID")
	}

	const id = "6f1c1a0e-8d3b-4a57-9d42-3b0f7c0f6f0e"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.RemoteAddr = "127.0.0.1:1"
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not a uuid" || got == "" {
		t.Errorf("malformed request ID kept: %q", got)
	}
}

func TestJSONContentType(t *testing.T) {
	router := NewRouter(newTestStore(t, fixture), RouterOptions{})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignments", strings.NewReader(`{"assignments":[]}`))
	req.RemoteAddr = "127.0.0.1:1"
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

type panicStore struct{ HostStore }

func (panicStore) Path() string { return "/dev/null" }

func (panicStore) Records(context.Context) ([]hosts.Record, error) {
	panic("boom")
}

func TestRecovery(t *testing.T) {
	rec := doRequest(t, NewRouter(panicStore{}, RouterOptions{}), http.MethodGet, "/api/v1/entries", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
