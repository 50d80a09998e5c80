// Package history records sync runs in MySQL and serves them over HTTP.
//
// Every sync run produces one row in the sync_runs table: when it started
// and finished, the plan size, the outcome tally and the error that aborted
// it, if any. The serve command exposes the table under /api/runs so
// operators can audit what the importer changed and when.
//
// The run history is optional. A sync run with no database connection still
// reconciles; it just leaves no record.
package history
