// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance supporting different environments
// (development vs production). The sync and serve paths both go through it,
// so every adapter operation logs with the same structured encoding.
//
// The WithRayID helper extracts the per-request ray id from a Fiber context
// and attaches it to the log entry so request logs can be correlated.
package logger
