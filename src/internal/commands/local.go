package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
)

func CreateLocalCommand() *LocalCommand {
	return &LocalCommand{
		fs: flag.NewFlagSet("local", flag.ContinueOnError),
	}
}

type LocalCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter

	host string
}

func (c *LocalCommand) Name() string {
	return c.fs.Name()
}

func (c *LocalCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return invalidCommand("Expected exactly one host")
	}
	c.host = c.fs.Arg(0)

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *LocalCommand) Run() error {
	local, err := c.writer.IsLocal(context.Background(), c.host)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.ctx.stdout(), local)
	return nil
}
