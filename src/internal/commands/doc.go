// Package commands implements the hostfile subcommands.
//
// Each command implements the Runner interface: Init parses the command's
// own flags and arguments and loads the configuration, Run does the work,
// and Name routes the command line to it. Malformed command lines are
// reported as invalid requests that point at "hostfile help".
//
// # Available Commands
//
//   - query: list active entries by host pattern or address
//   - point: assign an address to hosts
//   - reset: disable the entries of hosts
//   - local: tell whether a host points at this machine
//   - until-exit: assign until interrupted, then reset
//   - watch: print active entries whenever the file changes
//   - check: report readability, writability and content of the file
//   - serve: run the REST API and the optional DNS responder
//   - help: print usage
//
// # Example Usage
//
//	cmd := commands.CreatePointCommand()
//	ctx := &commands.AppContext{ConfigPath: "/etc/hostfile/hostfile.toml"}
//	if err := cmd.Init([]string{"example.com", "to", "127.0.0.1"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
