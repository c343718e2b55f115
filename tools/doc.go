// Package tools implements the externally invokable pricing operations.
//
// Each tool is a thin handler translating an opaque JSON payload into a typed
// query against the product catalog and back into a JSON response. Handlers
// validate their arguments before touching the catalog, so malformed input
// never reaches the database.
//
// Startup produces the bridge.StartupFunc that constructs the connection
// pool and binds the handler table to it on the worker runtime.
package tools
