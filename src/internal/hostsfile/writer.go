package hostsfile

import (
	"context"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

// HostWriter reads, queries and rewrites one hosts file. All operations on a
// HostWriter pass through a single FIFO gate, so a read-merge-write never
// interleaves with another operation of the same writer.
type HostWriter struct {
	path   string
	source LineSource
	sink   LineSink
	gate   *Gate
}

type Option func(*HostWriter)

// WithLineSource replaces the default file reader.
func WithLineSource(source LineSource) Option {
	return func(w *HostWriter) {
		w.source = source
	}
}

// WithLineSink replaces the default atomic file writer.
func WithLineSink(sink LineSink) Option {
	return func(w *HostWriter) {
		w.sink = sink
	}
}

// WithPathResolver sets where the hosts file lives when no explicit path was given.
func WithPathResolver(resolve PathResolver) Option {
	return func(w *HostWriter) {
		if w.path == "" {
			w.path = resolve()
		}
	}
}

// NewHostWriter creates a writer for path. An empty path selects the
// platform hosts file.
func NewHostWriter(path string, opts ...Option) *HostWriter {
	w := &HostWriter{
		path:   path,
		source: FileLineSource{},
		sink:   AtomicFileSink{},
		gate:   NewGate(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.path == "" {
		w.path = DefaultPathResolver()
	}
	return w
}

// Path returns the managed file.
func (w *HostWriter) Path() string {
	return w.path
}

// Records returns every parsed line of the file.
func (w *HostWriter) Records(ctx context.Context) ([]hosts.Record, error) {
	if err := w.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer w.gate.Release()

	return w.read(ctx)
}

// ListEntries returns all active entries.
func (w *HostWriter) ListEntries(ctx context.Context) ([]*hosts.ActiveEntry, error) {
	records, err := w.Records(ctx)
	if err != nil {
		return nil, err
	}
	return hosts.ActiveEntries(records), nil
}

// Query returns active entries matching items interpreted according to kind.
func (w *HostWriter) Query(ctx context.Context, kind hosts.QueryKind, items []string) ([]*hosts.ActiveEntry, error) {
	records, err := w.Records(ctx)
	if err != nil {
		return nil, err
	}
	return hosts.Query(records, kind, items), nil
}

// QueryByHost returns active entries with a host matching any of patterns. Patterns may use `*`.
func (w *HostWriter) QueryByHost(ctx context.Context, patterns []string) ([]*hosts.ActiveEntry, error) {
	return w.Query(ctx, hosts.QueryByHost, patterns)
}

// QueryByAddress returns active entries pointing to any of addresses.
func (w *HostWriter) QueryByAddress(ctx context.Context, addresses []string) ([]*hosts.ActiveEntry, error) {
	return w.Query(ctx, hosts.QueryByAddress, addresses)
}

// IsLocal reports whether host currently resolves to a loopback or unspecified address.
func (w *HostWriter) IsLocal(ctx context.Context, host string) (bool, error) {
	if err := ValidateHosts([]string{host}); err != nil {
		return false, err
	}
	records, err := w.Records(ctx)
	if err != nil {
		return false, err
	}
	return hosts.IsLocal(records, host), nil
}

// Lookup returns the addresses active entries give host, in file order.
func (w *HostWriter) Lookup(ctx context.Context, host string) ([]string, error) {
	records, err := w.Records(ctx)
	if err != nil {
		return nil, err
	}
	return hosts.Lookup(records, host), nil
}

// Assign points every requested host at its address. The file is only
// written when something changes.
func (w *HostWriter) Assign(ctx context.Context, requests []hosts.Request) error {
	if err := ValidateRequests(requests, true); err != nil {
		return err
	}
	_, err := w.point(ctx, requests)
	return err
}

// Unassign disables every active entry of the given hosts.
func (w *HostWriter) Unassign(ctx context.Context, hostNames []string) error {
	if err := ValidateHosts(hostNames); err != nil {
		return err
	}
	_, err := w.point(ctx, hosts.Removals(hostNames))
	return err
}

// Point applies a mix of assignments and removals (empty address) and
// reports whether the file was rewritten.
func (w *HostWriter) Point(ctx context.Context, requests []hosts.Request) (bool, error) {
	if err := ValidateRequests(requests, false); err != nil {
		return false, err
	}
	return w.point(ctx, requests)
}

func (w *HostWriter) point(ctx context.Context, requests []hosts.Request) (bool, error) {
	if err := w.gate.Acquire(ctx); err != nil {
		return false, err
	}
	defer w.gate.Release()

	records, err := w.read(ctx)
	if err != nil {
		return false, err
	}

	result := hosts.Merge(records, requests)
	if !result.Changed {
		log.Debugf("%s already up to date", w.path)
		return false, nil
	}

	// Once started, the write is not abandoned on cancellation.
	if err := w.sink.WriteLines(context.WithoutCancel(ctx), w.path, hosts.FormatLines(result.Records)); err != nil {
		return false, err
	}
	log.Debugf("Updated %s for %d request(s)", w.path, len(requests))
	return true, nil
}

func (w *HostWriter) read(ctx context.Context) ([]hosts.Record, error) {
	lines, err := w.source.ReadLines(ctx, w.path)
	if err != nil {
		return nil, err
	}
	return hosts.ParseLines(lines), nil
}
