//go:build !windows

package utils

func defaultHostsFilePath() string {
	return "/etc/hosts"
}
