// Package config handles configuration file parsing and validation for hostfile.
//
// The configuration file is TOML and entirely optional: when the default
// file is absent, Default() supplies every value. A file given explicitly
// with -config must exist.
//
// # Configuration Structure
//
//	[general]
//	hosts_file = ""          # empty = /etc/hosts or %SystemRoot%\System32\drivers\etc\hosts
//	line_ending = "auto"     # auto | lf | crlf
//	local_address = "127.0.0.1"
//
//	[api]
//	listen_addr = "127.0.0.1:8053"
//	private_only = true
//	rate_limit_rps = 5.0
//	rate_limit_burst = 10
//
//	[dns]
//	enable = false
//	listen_addr = "127.0.0.1:5353"
//	ttl_sec = 60
//
//	[watch]
//	debounce_ms = 200
//
// # Example Usage
//
//	cfg, err := config.LoadConfigOrDefault(path, explicit)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	path := cfg.GetHostsFilePath(utils.DefaultHostsFilePath())
//
// Validation collects every problem at once and reports them as a numbered
// list via ValidationErrors, using the TOML key names as field paths.
package config
