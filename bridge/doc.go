// Package bridge translates plain blocking calls into queued asynchronous
// work on a dedicated worker goroutine.
//
// A Bridge owns a bounded command channel and a single worker goroutine that
// is started exactly once, on first use, no matter how many goroutines race
// to trigger it. The worker constructs the resource pool (through the
// injected StartupFunc), signals readiness through a one-shot startup
// channel, and then consumes commands forever, spawning one goroutine per
// command so that slow queries never block the dispatch loop.
//
// Each command carries its own single-use reply channel. Commands are
// dequeued in submission order but complete in any order; every caller only
// ever observes its own result. A startup failure is terminal for the Bridge
// and is returned as a recoverable error to every past and future caller.
// Construct a new Bridge to retry.
//
// The Bridge has no shutdown or drain protocol: the worker goroutine lives
// for the lifetime of the process.
package bridge
