package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/maksimkurb/hostfile/src/internal/config"
	"github.com/maksimkurb/hostfile/src/internal/errors"
	"github.com/maksimkurb/hostfile/src/internal/hostsfile"
)

const helpHint = `Run "hostfile help" for usage information.`

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	// ConfigExplicit is set when the config path was given on the command
	// line; a missing file is then an error instead of falling back to defaults.
	ConfigExplicit bool
	// HostsFile overrides the hosts file from the configuration.
	HostsFile string
	Verbose   bool

	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// notifyContext returns a context cancelled by SIGINT, SIGTERM or SIGHUP.
var notifyContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(ctx *AppContext) (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(ctx.ConfigPath, ctx.ConfigExplicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// newHostWriter opens the hosts file selected by the command line or cfg.
func newHostWriter(ctx *AppContext, cfg *config.Config) *hostsfile.HostWriter {
	path := ctx.HostsFile
	if path == "" {
		path = cfg.GetHostsFilePath("")
	}
	return hostsfile.NewHostWriter(path, hostsfile.WithLineSink(hostsfile.AtomicFileSink{EOL: cfg.GetLineEnding()}))
}

// invalidCommand reports a malformed command line.
func invalidCommand(format string, args ...interface{}) error {
	return errors.NewInvalidRequestError(fmt.Sprintf(format, args...)+". "+helpHint, nil)
}

// splitPointArgs splits "<hosts...> [to] <address>".
func splitPointArgs(args []string) ([]string, string, error) {
	for i, arg := range args {
		if arg == "to" {
			if i == 0 || len(args) != i+2 {
				return nil, "", invalidCommand("Invalid command")
			}
			return args[:i], args[i+1], nil
		}
	}

	if len(args) < 2 {
		return nil, "", invalidCommand("Invalid command")
	}
	return args[:len(args)-1], args[len(args)-1], nil
}
