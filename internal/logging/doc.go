// Package logging provides a simple leveled logging interface for the
// book-cover application.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (per-invocation argv, temp paths)
//   - INFO: General operational messages
//   - WARN: Warning conditions (tool missing, render failures)
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable.
package logging
