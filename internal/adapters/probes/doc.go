// Package probes provides the concrete checks the service evaluates: the
// goroutine count of the process, saturation of the shared worker pool, and
// HTTP endpoints reached through the instrumented client.
//
// Every probe implements [check.Check] and reports through [check.Result];
// none of them returns an error for a failing target, so the engine's
// failure-state diff sees the probe's own message.
package probes
