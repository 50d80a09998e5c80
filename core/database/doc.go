// Package database handles the MySQL connection for the run history.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection with pool limits and
// connection/I-O timeouts applied through the DSN, then verifies it with a
// bounded ping. The run history is an optional feature, so a failed
// connection should degrade the sync command instead of aborting it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
package database
