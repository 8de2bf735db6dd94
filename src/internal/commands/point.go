package commands

import (
	"context"
	"flag"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

func CreatePointCommand() *PointCommand {
	pc := &PointCommand{
		fs: flag.NewFlagSet("point", flag.ContinueOnError),
	}
	pc.fs.BoolVar(&pc.local, "local", false, "Point the hosts at the configured local address")
	return pc
}

type PointCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter

	local    bool
	requests []hosts.Request
}

func (c *PointCommand) Name() string {
	return c.fs.Name()
}

func (c *PointCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}

	var hostNames []string
	var address string
	if c.local {
		hostNames = c.fs.Args()
		if len(hostNames) == 0 {
			return invalidCommand("Invalid command")
		}
		address = cfg.General.LocalAddress
	} else if hostNames, address, err = splitPointArgs(c.fs.Args()); err != nil {
		return err
	}

	c.requests = assignments(hostNames, address)
	if err := hostsfile.ValidateRequests(c.requests, true); err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *PointCommand) Run() error {
	changed, err := c.writer.Point(context.Background(), c.requests)
	if err != nil {
		return err
	}
	if changed {
		log.Infof("Updated %s", c.writer.Path())
	} else {
		log.Infof("%s is already up to date", c.writer.Path())
	}
	return nil
}

func assignments(hostNames []string, address string) []hosts.Request {
	requests := make([]hosts.Request, len(hostNames))
	for i, h := range hostNames {
		requests[i] = hosts.Request{Host: h, Address: address}
	}
	return requests
}
