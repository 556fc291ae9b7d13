package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedReturnsOutputUnchanged(t *testing.T) {
	res, err := Timed(func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res.Output)
	assert.GreaterOrEqual(t, res.Seconds, 0.0)
}

func TestTimedMeasuresElapsedTime(t *testing.T) {
	res, err := Timed(func() (string, error) {
		time.Sleep(20 * time.Millisecond)
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Output)
	assert.GreaterOrEqual(t, res.Seconds, 0.02)
}

func TestTimedPropagatesErrors(t *testing.T) {
	sentinel := errors.New("boom")
	res, err := Timed(func() (float64, error) {
		return 0.7, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Zero(t, res.Output, "no output is produced on failure")
	assert.Zero(t, res.Seconds)
}

func TestTimedInvokesComputationExactlyOnce(t *testing.T) {
	calls := 0
	_, err := Timed(func() (struct{}, error) {
		calls++
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTimedWithStructOutput(t *testing.T) {
	type payload struct {
		A int
		B string
	}
	res, err := Timed(func() (payload, error) {
		return payload{A: 1, B: "x"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, payload{A: 1, B: "x"}, res.Output)
}
