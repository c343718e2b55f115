// Package helper provides shared helpers for the catalog integration tests:
// schema setup, fixture seeding, and cleanup.
package helper
