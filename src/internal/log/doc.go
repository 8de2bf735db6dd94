// Package log provides simple leveled logging for hostfile.
//
// It implements a lightweight logging system with colored output and
// the levels DEBUG, INFO, WARN and ERROR, exposed as global functions.
//
// # Example Usage
//
//	log.Infof("Assigned %d host(s)", n)
//	log.Warnf("Could not reset host file entry: %v", err)
//
// Debug output is only written in verbose mode:
//
//	log.SetVerbose(true)
//	log.Debugf("Parsed %d records", len(records))
//
// The command-line tool calls SetForceStdErr(true) so that everything the
// logger writes goes to stderr and query results on stdout stay clean.
// All functions are safe for concurrent use.
package log
