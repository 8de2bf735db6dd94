package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/maksimkurb/hostfile/src/internal/utils"
)

const (
	LineEndingAuto = "auto"
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general" json:"general"`
	// API configures the REST API started by "hostfile serve".
	API *APIConfig `toml:"api" json:"api"`
	// DNS configures the optional DNS responder started by "hostfile serve".
	DNS *DNSConfig `toml:"dns" json:"dns"`
	// Watch configures change notifications for "hostfile watch".
	Watch *WatchConfig `toml:"watch" json:"watch"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// HostsFile is the hosts file to manage. Empty means the platform default. Relative paths are resolved against the config directory.
	HostsFile string `toml:"hosts_file" json:"hosts_file"`
	// LineEnding is the line terminator used when writing: auto (platform default), lf or crlf.
	LineEnding string `toml:"line_ending" json:"line_ending" validate:"required,oneof=auto lf crlf"`
	// LocalAddress is the address used by "point -local" (default: 127.0.0.1).
	LocalAddress string `toml:"local_address" json:"local_address" validate:"ip_or_empty"`
}

type APIConfig struct {
	// ListenAddr is the REST API listen address (default: 127.0.0.1:8053).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostport_or_empty"`
	// PrivateOnly rejects requests from outside loopback and private subnets (default: true).
	PrivateOnly bool `toml:"private_only" json:"private_only"`
	// RateLimitRPS is the per-client request rate. 0 disables rate limiting (default: 5).
	RateLimitRPS float64 `toml:"rate_limit_rps" json:"rate_limit_rps" validate:"gte=0"`
	// RateLimitBurst is the per-client burst size (default: 10).
	RateLimitBurst int `toml:"rate_limit_burst" json:"rate_limit_burst" validate:"gte=0"`
}

type DNSConfig struct {
	// Enable starts a DNS responder answering from active hosts file entries (default: false).
	Enable bool `toml:"enable" json:"enable"`
	// ListenAddr is the DNS listen address, UDP and TCP (default: 127.0.0.1:5353).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required_if=Enable true,hostport_or_empty"`
	// TTLSec is the TTL of answers in seconds (default: 60).
	TTLSec uint32 `toml:"ttl_sec" json:"ttl_sec" validate:"max=2147483"`
}

type WatchConfig struct {
	// DebounceMs coalesces bursts of file events (default: 200).
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms" validate:"gte=0,lte=60000"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.LineEnding == "" {
		c.General.LineEnding = LineEndingAuto
	}
	if c.General.LocalAddress == "" {
		c.General.LocalAddress = "127.0.0.1"
	}

	if c.API == nil {
		c.API = &APIConfig{
			PrivateOnly:    true,
			RateLimitRPS:   5,
			RateLimitBurst: 10,
		}
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = "127.0.0.1:8053"
	}

	if c.DNS == nil {
		c.DNS = &DNSConfig{TTLSec: 60}
	}
	if c.DNS.ListenAddr == "" {
		c.DNS.ListenAddr = "127.0.0.1:5353"
	}

	if c.Watch == nil {
		c.Watch = &WatchConfig{DebounceMs: 200}
	}
}

func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetHostsFilePath returns the configured hosts file, or fallback when none is set.
func (c *Config) GetHostsFilePath(fallback string) string {
	if c.General == nil || c.General.HostsFile == "" {
		return fallback
	}
	dir := c.GetConfigDir()
	if dir == "" {
		return filepath.Clean(c.General.HostsFile)
	}
	return utils.GetAbsolutePath(c.General.HostsFile, dir)
}

// GetLineEnding returns the line terminator to write.
func (c *Config) GetLineEnding() string {
	mode := LineEndingAuto
	if c.General != nil {
		mode = c.General.LineEnding
	}

	switch mode {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	default:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	}
}

// GetWatchDebounce returns the debounce interval for file change events.
func (c *Config) GetWatchDebounce() time.Duration {
	if c.Watch == nil {
		return 0
	}
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// GetDNSTTL returns the TTL for DNS answers.
func (c *Config) GetDNSTTL() time.Duration {
	if c.DNS == nil {
		return 0
	}
	return time.Duration(c.DNS.TTLSec) * time.Second
}
