// Package store provides abstractions for data persistence. It defines the
// interfaces the service and API layers depend on, plus shared error values
// and query option types. Concrete implementations live in
// internal/platform/postgres.
package store
