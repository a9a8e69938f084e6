// Package check defines the core vocabulary of the check engine: the Check
// capability, the immutable Result it produces, and the Severity used to
// rank results.
//
// A Check reports a Result or fails with an error (or panic). Execute wraps a
// Check so that failures are always contained in a Result:
//
//	res := check.Execute(ctx, check.Func(func(ctx context.Context) (check.Result, error) {
//	    if err := db.PingContext(ctx); err != nil {
//	        return check.Result{}, err
//	    }
//	    return check.Healthy(), nil
//	}))
//
// Severity ordering is healthy < warning < critical. A failing Result whose
// message starts with "WARN:" is a warning:
//
//	check.Classify(check.Warn("replica lag 4s")) // SeverityWarning
//	check.Classify(check.Unhealthy("no route"))  // SeverityCritical
//
// Each severity maps to a fixed status code (200, 400, 500) via
// Severity.StatusCode.
package check
