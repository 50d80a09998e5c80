// Package snapshot archives the inventory of each sync run in object
// storage.
//
// After a run completes, the adapter-side inventory (with remote ids and
// cable markers) is exported and uploaded as <run-id>.json to the archive
// bucket. Archived snapshots serve as the observed-state baseline for the
// next run and as an audit trail of what the importer believed at each
// point in time.
package snapshot
