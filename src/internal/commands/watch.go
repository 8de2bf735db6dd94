package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/maksimkurb/hostfile/src/internal/config"
	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

func CreateWatchCommand() *WatchCommand {
	wc := &WatchCommand{
		fs: flag.NewFlagSet("watch", flag.ContinueOnError),
	}
	wc.fs.DurationVar(&wc.debounce, "debounce", 0, "Coalesce file events within this interval (default from config)")
	return wc
}

// WatchCommand prints the active entries now and after every change of the file.
type WatchCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	writer *hostsfile.HostWriter

	debounce time.Duration
}

func (c *WatchCommand) Name() string {
	return c.fs.Name()
}

func (c *WatchCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 0 {
		return invalidCommand("watch takes no arguments")
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.debounce == 0 {
		c.debounce = cfg.GetWatchDebounce()
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *WatchCommand) Run() error {
	sigCtx, stop := notifyContext()
	defer stop()

	return c.watch(sigCtx)
}

func (c *WatchCommand) watch(ctx context.Context) error {
	events, err := hostsfile.Watch(ctx, c.writer.Path(), c.debounce)
	if err != nil {
		return err
	}

	if err := c.printEntries(ctx); err != nil {
		return err
	}

	for event := range events {
		if event.Removed {
			log.Warnf("%s was removed", event.Path)
			continue
		}
		log.Debugf("%s changed (md5 %s)", event.Path, event.Checksum)
		if err := c.printEntries(ctx); err != nil {
			log.Errorf("Failed to read %s: %v", event.Path, err)
		}
	}
	return nil
}

func (c *WatchCommand) printEntries(ctx context.Context) error {
	entries, err := c.writer.ListEntries(ctx)
	if err != nil {
		return err
	}

	records := make([]hosts.Record, len(entries))
	for i, entry := range entries {
		records[i] = entry
	}

	out := c.ctx.stdout()
	fmt.Fprintf(out, "# %s (%d active entries)\n", time.Now().Format(time.RFC3339), len(entries))
	for _, line := range hosts.FormatLines(records) {
		fmt.Fprintln(out, line)
	}
	return nil
}
