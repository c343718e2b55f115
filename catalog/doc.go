// Package catalog defines the core product types, sentinel errors, and
// observability interfaces shared by the Postgres engine and the bridge.
//
// The package is built on scalars and small interfaces so that storage
// engines and callers stay agnostic of each other's implementation.
package catalog
