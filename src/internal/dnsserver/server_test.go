package dnsserver

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/miekg/dns"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
)

const fixture = "127.0.0.1   example.com www.example.com\n" +
	"::1         example.com\n" +
	"10.0.0.5    v4only.test\n" +
	"fd00::5     v6only.test\n" +
	"10.0.0.6    bücher.test\n" +
	"#10.0.0.7   disabled.test\n" +
	"10.0.0.8    Mixed.Case.test"

type staticSource struct {
	records []hosts.Record
	err     error
}

func (s staticSource) Records(context.Context) ([]hosts.Record, error) {
	return s.records, s.err
}

func newSource(content string) staticSource {
	return staticSource{records: hosts.ParseLines(strings.Split(content, "\n"))}
}

func query(name string, qtype uint16) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	return m
}

func answers(resp *dns.Msg) []string {
	var out []string
	for _, rr := range resp.Answer {
		switch rr := rr.(type) {
		case *dns.A:
			out = append(out, rr.A.String())
		case *dns.AAAA:
			out = append(out, rr.AAAA.String())
		}
	}
	return out
}

func TestAnswer(t *testing.T) {
	s := NewServer("127.0.0.1:0", newSource(fixture), 60*time.Second)

	tests := []struct {
		name      string
		qname     string
		qtype     uint16
		wantRcode int
		want      []string
	}{
		{name: "a record", qname: "example.com", qtype: dns.TypeA, wantRcode: dns.RcodeSuccess, want: []string{"127.0.0.1"}},
		{name: "aaaa record", qname: "example.com", qtype: dns.TypeAAAA, wantRcode: dns.RcodeSuccess, want: []string{"::1"}},
		{name: "second host of entry", qname: "www.example.com", qtype: dns.TypeA, wantRcode: dns.RcodeSuccess, want: []string{"127.0.0.1"}},
		{name: "case insensitive", qname: "MIXED.case.TEST", qtype: dns.TypeA, wantRcode: dns.RcodeSuccess, want: []string{"10.0.0.8"}},
		{name: "other family only", qname: "v4only.test", qtype: dns.TypeAAAA, wantRcode: dns.RcodeSuccess, want: nil},
		{name: "ipv6 only", qname: "v6only.test", qtype: dns.TypeAAAA, wantRcode: dns.RcodeSuccess, want: []string{"fd00::5"}},
		{name: "punycode", qname: "xn--bcher-kva.test", qtype: dns.TypeA, wantRcode: dns.RcodeSuccess, want: []string{"10.0.0.6"}},
		{name: "other type on known name", qname: "example.com", qtype: dns.TypeMX, wantRcode: dns.RcodeSuccess, want: nil},
		{name: "disabled entry", qname: "disabled.test", qtype: dns.TypeA, wantRcode: dns.RcodeNameError, want: nil},
		{name: "unknown name", qname: "nope.test", qtype: dns.TypeA, wantRcode: dns.RcodeNameError, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.answer(context.Background(), query(tt.qname, tt.qtype))
			if resp.Rcode != tt.wantRcode {
				t.Errorf("rcode = %s, want %s", dns.RcodeToString[resp.Rcode], dns.RcodeToString[tt.wantRcode])
			}
			if !resp.Authoritative {
				t.Error("response should be authoritative")
			}
			got := answers(resp)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("answers = %v, want %v", got, tt.want)
			}
			for _, rr := range resp.Answer {
				if rr.Header().Ttl != 60 {
					t.Errorf("ttl = %d, want 60", rr.Header().Ttl)
				}
			}
		})
	}
}

func TestAnswerReadFailure(t *testing.T) {
	s := NewServer("127.0.0.1:0", staticSource{err: stderrors.New("boom")}, time.Minute)
	resp := s.answer(context.Background(), query("example.com", dns.TypeA))
	if resp.Rcode != dns.RcodeServerFailure {
		t.Errorf("rcode = %s, want SERVFAIL", dns.RcodeToString[resp.Rcode])
	}
}

func TestAnswerRejectsNonQueries(t *testing.T) {
	s := NewServer("127.0.0.1:0", newSource(fixture), time.Minute)

	notify := query("example.com", dns.TypeSOA)
	notify.Opcode = dns.OpcodeNotify
	if resp := s.answer(context.Background(), notify); resp.Rcode != dns.RcodeNotImplemented {
		t.Errorf("rcode = %s, want NOTIMP", dns.RcodeToString[resp.Rcode])
	}

	chaos := query("example.com", dns.TypeA)
	chaos.Question[0].Qclass = dns.ClassCHAOS
	if resp := s.answer(context.Background(), chaos); resp.Rcode != dns.RcodeRefused {
		t.Errorf("rcode = %s, want REFUSED", dns.RcodeToString[resp.Rcode])
	}
}

func TestServeUDPAndTCP(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	s := NewServer("", newSource(fixture), time.Minute)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(pc, ln)
	}()

	for _, tc := range []struct {
		network string
		addr    string
	}{
		{network: "udp", addr: pc.LocalAddr().String()},
		{network: "tcp", addr: ln.Addr().String()},
	} {
		client := &dns.Client{Net: tc.network, Timeout: 2 * time.Second}
		var resp *dns.Msg
		deadline := time.Now().Add(5 * time.Second)
		for {
			resp, _, err = client.Exchange(query("example.com", dns.TypeA), tc.addr)
			if err == nil || time.Now().After(deadline) {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		if err != nil {
			t.Fatalf("%s exchange: %v", tc.network, err)
		}
		if got := answers(resp); len(got) != 1 || got[0] != "127.0.0.1" {
			t.Errorf("%s answers = %v", tc.network, got)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}
