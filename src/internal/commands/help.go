package commands

import (
	"flag"
	"fmt"
	"io"
)

const usage = `Usage:
  hostfile [options] query host <hosts>               Lists active entries for one or more hosts. Supports * wildcards.
  hostfile [options] query address <addresses>        Lists active entries pointing to one or more addresses
  hostfile [options] point <hosts> [to] <address>     Assigns <address> to one or more hosts
  hostfile [options] point -local <hosts>             Assigns the local address to one or more hosts
  hostfile [options] reset <hosts>                    Removes hostfile assignments for one or more hosts
  hostfile [options] local <host>                     Prints whether <host> points at this machine
  hostfile [options] until-exit <hosts> [to] <address>
                                                      Assigns <address> until interrupted, then resets the hosts
  hostfile [options] watch                            Prints active entries whenever the hosts file changes
  hostfile [options] check                            Checks that the hosts file is readable and writable
  hostfile [options] serve                            Runs the REST API and the optional DNS responder
  hostfile help                                       Shows this message
`

// PrintUsage writes the command summary to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usage)
}

func CreateHelpCommand() *HelpCommand {
	return &HelpCommand{
		fs: flag.NewFlagSet("help", flag.ContinueOnError),
	}
}

type HelpCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
}

func (c *HelpCommand) Name() string {
	return c.fs.Name()
}

func (c *HelpCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	return c.fs.Parse(args)
}

func (c *HelpCommand) Run() error {
	PrintUsage(c.ctx.stdout())
	return nil
}
