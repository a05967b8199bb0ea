// Package mocks provides hand-written mock implementations of the store
// and service interfaces for testing.
//
// Each mock offers two levels of control: function fields (CreateFn,
// GetByIDFn, ...) override individual methods for a single test, while the
// default implementations behave like a small in-memory store so most tests
// need no setup beyond seeding the maps.
package mocks
