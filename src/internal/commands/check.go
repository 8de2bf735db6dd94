package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/maksimkurb/hostfile/src/internal/hashing"
	"github.com/maksimkurb/hostfile/src/internal/hosts"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
	"github.com/maksimkurb/hostfile/src/internal/log"
	"github.com/maksimkurb/hostfile/src/internal/utils"
)

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ContinueOnError),
	}
}

// CheckCommand reports whether the hosts file can be managed and what it contains.
type CheckCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	writer *hostsfile.HostWriter
}

// CheckReport summarizes a hosts file.
type CheckReport struct {
	Path     string
	Writable bool
	Counts   map[hosts.Kind]int
	// DistinctHosts counts the hosts of active entries, ignoring case.
	DistinctHosts int
	// HostsChecksum fingerprints the set of active hosts.
	HostsChecksum string
	FileChecksum  string
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.writer = newHostWriter(ctx, cfg)

	return nil
}

func (c *CheckCommand) Run() error {
	report, err := buildCheckReport(context.Background(), c.writer)
	if err != nil {
		log.Errorf("Hosts file %s is not readable", c.writer.Path())
		return err
	}

	out := c.ctx.stdout()
	fmt.Fprintf(out, "Hosts file:     %s\n", report.Path)
	fmt.Fprintf(out, "Readable:       yes\n")
	fmt.Fprintf(out, "Writable:       %s\n", yesNo(report.Writable))
	fmt.Fprintf(out, "Active:         %d\n", report.Counts[hosts.KindActive])
	fmt.Fprintf(out, "Disabled:       %d\n", report.Counts[hosts.KindDisabled])
	fmt.Fprintf(out, "Comments:       %d\n", report.Counts[hosts.KindComment])
	fmt.Fprintf(out, "Blank:          %d\n", report.Counts[hosts.KindBlank])
	fmt.Fprintf(out, "Unrecognized:   %d\n", report.Counts[hosts.KindInvalid])
	fmt.Fprintf(out, "Distinct hosts: %d\n", report.DistinctHosts)
	fmt.Fprintf(out, "Hosts checksum: %s\n", report.HostsChecksum)
	fmt.Fprintf(out, "File checksum:  %s\n", report.FileChecksum)

	if !report.Writable {
		log.Warnf("%s is not writable; point and reset will fail", report.Path)
	}
	return nil
}

func buildCheckReport(ctx context.Context, writer *hostsfile.HostWriter) (*CheckReport, error) {
	records, err := writer.Records(ctx)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Path:     writer.Path(),
		Writable: utils.IsWritable(writer.Path()),
		Counts:   make(map[hosts.Kind]int),
	}
	for _, record := range records {
		report.Counts[hosts.KindOf(record)]++
	}

	hostSet := hashing.NewChecksumStringSet()
	for _, entry := range hosts.ActiveEntries(records) {
		for _, host := range entry.Hosts {
			if err := hostSet.Put(strings.ToLower(host)); err != nil {
				return nil, err
			}
		}
	}
	report.DistinctHosts = hostSet.Size()
	if report.HostsChecksum, err = hostSet.GetChecksum(); err != nil {
		return nil, err
	}

	if report.FileChecksum, err = hashing.FileChecksum(writer.Path()); err != nil {
		return nil, err
	}
	return report, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
