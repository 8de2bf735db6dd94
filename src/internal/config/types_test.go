package config

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestConfig_GetHostsFilePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "empty falls back",
			config:   Default(),
			expected: "/etc/hosts",
		},
		{
			name: "absolute path",
			config: &Config{
				General:            &GeneralConfig{HostsFile: "/srv/hosts"},
				_absConfigFilePath: "/home/user/config/hostfile.toml",
			},
			expected: "/srv/hosts",
		},
		{
			name: "relative to config directory",
			config: &Config{
				General:            &GeneralConfig{HostsFile: "hosts"},
				_absConfigFilePath: "/home/user/config/hostfile.toml",
			},
			expected: "/home/user/config/hosts",
		},
		{
			name:     "relative without config file",
			config:   &Config{General: &GeneralConfig{HostsFile: "./hosts"}},
			expected: "hosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetHostsFilePath("/etc/hosts")
			if result != filepath.FromSlash(tt.expected) {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetLineEnding(t *testing.T) {
	auto := "\n"
	if runtime.GOOS == "windows" {
		auto = "\r\n"
	}

	tests := []struct {
		mode     string
		expected string
	}{
		{LineEndingAuto, auto},
		{LineEndingLF, "\n"},
		{LineEndingCRLF, "\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			config := Default()
			config.General.LineEnding = tt.mode
			if got := config.GetLineEnding(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	config := Default()
	if got := config.GetWatchDebounce(); got != 200*time.Millisecond {
		t.Errorf("Expected 200ms debounce, got %v", got)
	}
	if got := config.GetDNSTTL(); got != time.Minute {
		t.Errorf("Expected 60s ttl, got %v", got)
	}

	empty := &Config{}
	if empty.GetWatchDebounce() != 0 || empty.GetDNSTTL() != 0 {
		t.Errorf("Expected zero durations without sections")
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	if config.General.LineEnding != LineEndingAuto {
		t.Errorf("Expected auto line ending, got %s", config.General.LineEnding)
	}
	if !config.API.PrivateOnly {
		t.Errorf("Expected API to be private by default")
	}
	if config.DNS.Enable {
		t.Errorf("Expected DNS responder to be disabled by default")
	}
	if config.GetConfigDir() != "" {
		t.Errorf("Expected no config dir for defaults, got %s", config.GetConfigDir())
	}
}
