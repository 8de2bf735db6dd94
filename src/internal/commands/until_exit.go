package commands

import (
	"context"
	"flag"
	"time"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

const resetTimeout = 10 * time.Second

func CreateUntilExitCommand() *UntilExitCommand {
	return &UntilExitCommand{
		fs: flag.NewFlagSet("until-exit", flag.ContinueOnError),
	}
}

// UntilExitCommand keeps an assignment in place while it runs and resets
// the hosts when interrupted.
type UntilExitCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter

	hostNames []string
	requests  []hosts.Request
}

func (c *UntilExitCommand) Name() string {
	return c.fs.Name()
}

func (c *UntilExitCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	hostNames, address, err := splitPointArgs(c.fs.Args())
	if err != nil {
		return err
	}
	c.hostNames = hostNames
	c.requests = assignments(hostNames, address)
	if err := hostsfile.ValidateRequests(c.requests, true); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *UntilExitCommand) Run() error {
	sigCtx, stop := notifyContext()
	defer stop()

	if err := c.writer.Assign(context.Background(), c.requests); err != nil {
		return err
	}
	log.Infof("Pointed %d host(s) to %s until exit", len(c.hostNames), c.requests[0].Address)

	<-sigCtx.Done()
	log.Infof("Resetting %d host(s)...", len(c.hostNames))

	resetCtx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()
	if err := c.writer.Unassign(resetCtx, c.hostNames); err != nil {
		log.Debugf("Reset failed: %v", err)
		log.Warnf("Could not automatically reset host file entry. Make sure the file is writable to enable this feature.")
	}
	return nil
}
