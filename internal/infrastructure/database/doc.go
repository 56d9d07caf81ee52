// Package database provides SQLite connectivity for the gateway.
//
// The database backs everything that must survive a restart, today the
// service and channel tags. Behaviour notes:
//
//   - WAL mode lets reads proceed while the single writer works
//   - the pool is pinned to one connection; SQLite has one writer
//   - schema migrations are embedded in the binary and applied on
//     startup, each in its own transaction
//   - the database file is owner read/write only
//
// Usage:
//
//	db, err := database.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files live in the migrations package and are named
// YYYYMMDD_HHMMSS_description.up.sql with an optional matching
// .down.sql for rollback. Migrations are additive only: new columns are
// nullable or defaulted, and nothing is dropped or renamed.
package database
