// Package checks evaluates registered checks and aggregates their results.
//
// An [Engine] runs a filtered subset of a registry, sequentially or on a
// bounded [fanout.Pool], and always returns one Result per selected check.
// A [Controller] adds severity aggregation, named [Groups] and change-based
// failure logging on top of the engine. [Render] prepares a result map for
// display and [TransitionLogger] reports flips of the aggregate ready state.
//
//	pool := fanout.NewPool(8)
//	ctrl := checks.NewController(registry, pool, groups,
//	    checks.WithLogger(logger),
//	    checks.WithObserver(transitions.Enqueue),
//	)
//	go transitions.Listen(ctx)
//	report := ctrl.RunAll(ctx)
//	view := checks.Render(report.Results, false)
package checks
