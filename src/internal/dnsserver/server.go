package dnsserver

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

const queryTimeout = 2 * time.Second

// RecordSource supplies the current records of the hosts file.
type RecordSource interface {
	Records(ctx context.Context) ([]hosts.Record, error)
}

// Server is a UDP and TCP DNS responder.
type Server struct {
	listenAddr string
	source     RecordSource
	ttl        uint32

	mu         sync.Mutex
	transports []*transport
	stopped    bool
}

type transport struct {
	srv     *dns.Server
	started chan struct{}
	done    chan struct{}
}

// NewServer creates a responder for listenAddr answering with the given TTL.
func NewServer(listenAddr string, source RecordSource, ttl time.Duration) *Server {
	return &Server{
		listenAddr: listenAddr,
		source:     source,
		ttl:        uint32(ttl / time.Second),
	}
}

// Start listens on UDP and TCP and serves until Stop is called.
func (s *Server) Start() error {
	pc, err := net.ListenPacket("udp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on udp %s: %w", s.listenAddr, err)
	}
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		_ = pc.Close()
		return fmt.Errorf("failed to listen on tcp %s: %w", s.listenAddr, err)
	}
	return s.Serve(pc, ln)
}

// Serve answers queries arriving on pc and ln until Stop is called.
func (s *Server) Serve(pc net.PacketConn, ln net.Listener) error {
	transports := []*transport{
		newTransport(&dns.Server{PacketConn: pc, Handler: s}),
		newTransport(&dns.Server{Listener: ln, Handler: s}),
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		_ = pc.Close()
		_ = ln.Close()
		return nil
	}
	s.transports = transports
	s.mu.Unlock()

	log.Infof("[DNS] Serving hosts entries on %s (udp+tcp)", pc.LocalAddr())

	errCh := make(chan error, len(transports))
	for _, t := range transports {
		go func(t *transport) {
			err := t.srv.ActivateAndServe()
			close(t.done)
			errCh <- err
		}(t)
	}

	var firstErr error
	for range transports {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			// Bring the other transport down too.
			_ = s.Stop(context.Background())
		}
	}
	return firstErr
}

func newTransport(srv *dns.Server) *transport {
	t := &transport{
		srv:     srv,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
	srv.NotifyStartedFunc = func() { close(t.started) }
	return t
}

// Stop shuts both transports down. A server that is stopped before it
// starts serving returns from Serve immediately.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	transports := s.transports
	s.transports = nil
	s.stopped = true
	s.mu.Unlock()

	if len(transports) > 0 {
		log.Infof("[DNS] Shutting down server...")
	}
	var firstErr error
	for _, t := range transports {
		select {
		case <-t.started:
			if err := t.srv.ShutdownContext(ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		case <-t.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return firstErr
}

// ServeDNS implements dns.Handler.
func (s *Server) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	resp := s.answer(ctx, req)
	if err := w.WriteMsg(resp); err != nil {
		log.Debugf("[DNS] Failed to write response to %s: %v", w.RemoteAddr(), err)
	}
}

func (s *Server) answer(ctx context.Context, req *dns.Msg) *dns.Msg {
	resp := new(dns.Msg)
	resp.SetReply(req)
	resp.Authoritative = true

	if req.Opcode != dns.OpcodeQuery {
		resp.Rcode = dns.RcodeNotImplemented
		return resp
	}
	if len(req.Question) != 1 {
		resp.Rcode = dns.RcodeFormatError
		return resp
	}

	q := req.Question[0]
	if q.Qclass != dns.ClassINET {
		resp.Rcode = dns.RcodeRefused
		return resp
	}

	records, err := s.source.Records(ctx)
	if err != nil {
		log.Warnf("[DNS] Failed to read hosts file: %v", err)
		resp.Rcode = dns.RcodeServerFailure
		return resp
	}

	addresses, found := lookup(records, q.Name)
	if !found {
		log.Debugf("[DNS] %s %s: NXDOMAIN", q.Name, dns.TypeToString[q.Qtype])
		resp.Rcode = dns.RcodeNameError
		return resp
	}

	for _, addr := range addresses {
		switch {
		case q.Qtype == dns.TypeA && addr.Is4():
			resp.Answer = append(resp.Answer, &dns.A{
				Hdr: s.header(q.Name, dns.TypeA),
				A:   addr.AsSlice(),
			})
		case q.Qtype == dns.TypeAAAA && addr.Is6():
			resp.Answer = append(resp.Answer, &dns.AAAA{
				Hdr:  s.header(q.Name, dns.TypeAAAA),
				AAAA: addr.AsSlice(),
			})
		}
	}

	log.Debugf("[DNS] %s %s: %d answer(s)", q.Name, dns.TypeToString[q.Qtype], len(resp.Answer))
	return resp
}

func (s *Server) header(name string, rrtype uint16) dns.RR_Header {
	return dns.RR_Header{
		Name:   name,
		Rrtype: rrtype,
		Class:  dns.ClassINET,
		Ttl:    s.ttl,
	}
}

// lookup returns the distinct addresses active entries give qname and
// whether any active entry references it at all.
func lookup(records []hosts.Record, qname string) ([]netip.Addr, bool) {
	names := candidateNames(qname)

	var addresses []netip.Addr
	found := false
	for _, entry := range hosts.ActiveEntries(records) {
		if !referencesAny(entry, names) {
			continue
		}
		found = true

		addr, err := netip.ParseAddr(entry.Address)
		if err != nil {
			continue
		}
		if !containsAddr(addresses, addr) {
			addresses = append(addresses, addr)
		}
	}
	return addresses, found
}

// candidateNames returns qname without its trailing dot and, for punycode
// names, its Unicode form.
func candidateNames(qname string) []string {
	name := strings.TrimSuffix(qname, ".")
	names := []string{name}
	if decoded, err := idna.Lookup.ToUnicode(name); err == nil && !strings.EqualFold(decoded, name) {
		names = append(names, decoded)
	}
	return names
}

func referencesAny(entry *hosts.ActiveEntry, names []string) bool {
	for _, name := range names {
		if entry.ReferencesHost(name) {
			return true
		}
	}
	return false
}

func containsAddr(addresses []netip.Addr, addr netip.Addr) bool {
	for _, a := range addresses {
		if a == addr {
			return true
		}
	}
	return false
}
