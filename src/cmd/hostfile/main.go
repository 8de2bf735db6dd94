package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/hostfile/src/internal/commands"
	"github.com/maksimkurb/hostfile/src/internal/config"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file (optional)")
	flag.StringVar(&ctx.HostsFile, "hosts-file", "", "Hosts file to manage (default: from config, then the platform hosts file)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Hosts file manager\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		commands.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			ctx.ConfigExplicit = true
		}
	})

	// Logs go to stderr so that query output can be piped.
	log.SetForceStdErr(true)
	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateHelpCommand(),
		commands.CreateQueryCommand(),
		commands.CreatePointCommand(),
		commands.CreateResetCommand(),
		commands.CreateLocalCommand(),
		commands.CreateUntilExitCommand(),
		commands.CreateWatchCommand(),
		commands.CreateCheckCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("%v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("%v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unrecognized command %q. Run \"hostfile help\" for usage information.", subcommand)
}
