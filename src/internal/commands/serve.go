package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/maksimkurb/hostfile/src/internal/api"
	"github.com/maksimkurb/hostfile/src/internal/config"
	"github.com/maksimkurb/hostfile/src/internal/dnsserver"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
	"github.com/maksimkurb/hostfile/src/internal/ratelimit"
)

const shutdownTimeout = 30 * time.Second

func CreateServeCommand() *ServeCommand {
	sc := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
	sc.fs.StringVar(&sc.bindAddr, "bind", "", "Address to bind the HTTP server (overrides api.listen_addr)")
	sc.fs.BoolVar(&sc.enableDNS, "dns", false, "Start the DNS responder even if dns.enable is false")
	return sc
}

// ServeCommand runs the REST API and, when enabled, the DNS responder. Each
// component is supervised and restarted with backoff if it fails.
type ServeCommand struct {
	fs      *flag.FlagSet
	ctx     *AppContext
	cfg     *config.Config
	writer  *hostsfile.HostWriter
	limiter *ratelimit.Limiter

	bindAddr  string
	enableDNS bool
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.bindAddr == "" {
		c.bindAddr = cfg.API.ListenAddr
	}
	if c.enableDNS {
		cfg.DNS.Enable = true
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *ServeCommand) Run() error {
	sigCtx, stop := notifyContext()
	defer stop()

	c.limiter = ratelimit.NewLimiter(c.cfg.API.RateLimitRPS, c.cfg.API.RateLimitBurst)
	defer c.limiter.Close()

	log.Infof("Managing hosts file %s", c.writer.Path())
	if c.cfg.API.PrivateOnly {
		log.Infof("API access restricted to loopback, private and link-local clients")
	}

	runners := []*RestartableRunner{
		NewRestartableRunner(RunnerConfig{Name: "api"}, c.runAPI),
		NewRestartableRunner(RunnerConfig{Name: "watcher"}, c.runWatcher),
	}
	if c.cfg.DNS.Enable {
		runners = append(runners, NewRestartableRunner(RunnerConfig{Name: "dns"}, c.runDNS))
	}

	for _, r := range runners {
		if err := r.Start(sigCtx); err != nil {
			return err
		}
	}

	<-sigCtx.Done()
	log.Infof("Shutting down...")

	var firstErr error
	for _, r := range runners {
		if err := r.Stop(); err != nil {
			log.Errorf("Failed to stop %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (c *ServeCommand) runAPI(ctx context.Context) error {
	router := api.NewRouter(c.writer, api.RouterOptions{
		PrivateOnly: c.cfg.API.PrivateOnly,
		Limiter:     c.limiter,
	})
	server := api.NewServer(c.bindAddr, router)
	return runUntilDone(ctx, server.Start, server.Stop)
}

func (c *ServeCommand) runDNS(ctx context.Context) error {
	server := dnsserver.NewServer(c.cfg.DNS.ListenAddr, c.writer, c.cfg.GetDNSTTL())
	return runUntilDone(ctx, server.Start, server.Stop)
}

// runWatcher logs edits made to the hosts file by other programs.
func (c *ServeCommand) runWatcher(ctx context.Context) error {
	events, err := hostsfile.Watch(ctx, c.writer.Path(), c.cfg.GetWatchDebounce())
	if err != nil {
		return err
	}
	for event := range events {
		if event.Removed {
			log.Warnf("Hosts file %s was removed", event.Path)
			continue
		}
		log.Infof("Hosts file %s changed (md5 %s)", event.Path, event.Checksum)
	}
	return nil
}

// runUntilDone runs start until ctx ends, then calls stop.
func runUntilDone(ctx context.Context, start func() error, stop func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- start()
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return fmt.Errorf("server exited unexpectedly")
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(shutdownCtx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	return <-errCh
}
