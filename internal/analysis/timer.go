package analysis

import "time"

// TimedResult pairs a computation's output with its wall-clock duration
// in seconds. Seconds is derived from Go's monotonic clock and is never
// negative.
type TimedResult[T any] struct {
	Output  T
	Seconds float64
}

// Timed runs fn to completion and measures its elapsed time. The wrapped
// computation is invoked exactly once. On failure the error is returned
// unchanged and no output is produced.
func Timed[T any](fn func() (T, error)) (TimedResult[T], error) {
	start := time.Now()
	out, err := fn()
	if err != nil {
		var zero TimedResult[T]
		return zero, err
	}
	return TimedResult[T]{Output: out, Seconds: time.Since(start).Seconds()}, nil
}
