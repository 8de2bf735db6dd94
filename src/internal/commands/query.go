package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
)

// Tags available to query -format.
const (
	QUERY_TMPL_ADDRESS = "address"
	QUERY_TMPL_HOSTS   = "hosts"
	QUERY_TMPL_COMMENT = "comment"
)

func CreateQueryCommand() *QueryCommand {
	qc := &QueryCommand{
		fs: flag.NewFlagSet("query", flag.ContinueOnError),
	}
	qc.fs.StringVar(&qc.format, "format", "", "Output template, e.g. '{{address}} {{hosts}}'. Tags: {{address}}, {{hosts}}, {{comment}}")
	return qc
}

type QueryCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter

	format   string
	template *fasttemplate.Template
	kind     hosts.QueryKind
	items    []string
}

func (c *QueryCommand) Name() string {
	return c.fs.Name()
}

func (c *QueryCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	rest := c.fs.Args()
	if len(rest) == 0 {
		return invalidCommand("Missing query subject")
	}
	kind, err := hosts.ParseQueryKind(rest[0])
	if err != nil {
		return invalidCommand("Unrecognized query option %q", rest[0])
	}
	c.kind = kind
	c.items = rest[1:]
	if len(c.items) == 0 {
		return invalidCommand("Nothing to query")
	}

	if c.format != "" {
		t, err := fasttemplate.NewTemplate(c.format, "{{", "}}")
		if err != nil {
			return invalidCommand("Invalid -format template: %v", err)
		}
		c.template = t
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *QueryCommand) Run() error {
	entries, err := c.writer.Query(context.Background(), c.kind, c.items)
	if err != nil {
		return err
	}

	out := c.ctx.stdout()
	for _, line := range c.render(entries) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// render formats entries aligned among themselves, or through the -format template.
func (c *QueryCommand) render(entries []*hosts.ActiveEntry) []string {
	lines := make([]string, 0, len(entries))

	if c.template == nil {
		records := make([]hosts.Record, len(entries))
		for i, entry := range entries {
			records[i] = entry
		}
		for _, line := range hosts.FormatLines(records) {
			lines = append(lines, strings.TrimSpace(line))
		}
		return lines
	}

	for _, entry := range entries {
		lines = append(lines, c.template.ExecuteString(map[string]interface{}{
			QUERY_TMPL_ADDRESS: entry.Address,
			QUERY_TMPL_HOSTS:   entry.HostsField(),
			QUERY_TMPL_COMMENT: entry.Comment,
		}))
	}
	return lines
}
