// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the internal/store package.
//
// Each store type accepts a store.DBTX (either *sql.DB or *sql.Tx), so the
// same implementation serves both standalone operations and operations that
// participate in a larger transaction via WithTx. Database errors are mapped
// to the store package's sentinel errors through MapError, so callers never
// see driver-specific error types.
package postgres
