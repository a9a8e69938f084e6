package check

import "errors"

var (
	// ErrCheckTimeout is carried by the Result of a check that did not finish
	// within its deadline.
	ErrCheckTimeout = errors.New("check: timed out")

	// ErrNotScheduled is carried by the synthetic Result of a check whose
	// execution could not be scheduled or whose task failed outside the check.
	ErrNotScheduled = errors.New("check: execution failed")
)
