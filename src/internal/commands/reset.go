package commands

import (
	"context"
	"flag"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

func CreateResetCommand() *ResetCommand {
	return &ResetCommand{
		fs: flag.NewFlagSet("reset", flag.ContinueOnError),
	}
}

type ResetCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter

	hostNames []string
}

func (c *ResetCommand) Name() string {
	return c.fs.Name()
}

func (c *ResetCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	c.hostNames = c.fs.Args()
	if len(c.hostNames) == 0 {
		return invalidCommand("Invalid command")
	}
	if err := hostsfile.ValidateHosts(c.hostNames); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *ResetCommand) Run() error {
	changed, err := c.writer.Point(context.Background(), hosts.Removals(c.hostNames))
	if err != nil {
		return err
	}
	if changed {
		log.Infof("Reset %d host(s) in %s", len(c.hostNames), c.writer.Path())
	} else {
		log.Infof("No active entries to reset in %s", c.writer.Path())
	}
	return nil
}
