package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusFactor(t *testing.T) {
	tests := []struct {
		name         string
		contributors []Contributor
		threshold    float64
		expected     int
	}{
		{
			name:         "empty contributor list",
			contributors: []Contributor{},
			threshold:    50,
			expected:     0,
		},
		{
			name:         "nil contributor list",
			contributors: nil,
			threshold:    50,
			expected:     0,
		},
		{
			name: "single contributor holds everything",
			contributors: []Contributor{
				{Login: "solo", Contributions: 500},
			},
			threshold: 50,
			expected:  1,
		},
		{
			name: "single contributor at threshold 100",
			contributors: []Contributor{
				{Login: "solo", Contributions: 1},
			},
			threshold: 100,
			expected:  1,
		},
		{
			name: "top contributor alone exceeds half",
			contributors: []Contributor{
				{Login: "a", Contributions: 90},
				{Login: "b", Contributions: 10},
			},
			threshold: 50,
			expected:  1,
		},
		{
			name: "even split needs half the heads",
			contributors: []Contributor{
				{Login: "a", Contributions: 25},
				{Login: "b", Contributions: 25},
				{Login: "c", Contributions: 25},
				{Login: "d", Contributions: 25},
			},
			threshold: 50,
			expected:  2,
		},
		{
			name: "unsorted input is sorted before accumulation",
			contributors: []Contributor{
				{Login: "small", Contributions: 5},
				{Login: "big", Contributions: 80},
				{Login: "mid", Contributions: 15},
			},
			threshold: 50,
			expected:  1,
		},
		{
			name: "all contributors have zero commits",
			contributors: []Contributor{
				{Login: "a", Contributions: 0},
				{Login: "b", Contributions: 0},
			},
			threshold: 50,
			expected:  0,
		},
		{
			name: "full threshold needs every contributor",
			contributors: []Contributor{
				{Login: "a", Contributions: 60},
				{Login: "b", Contributions: 30},
				{Login: "c", Contributions: 10},
			},
			threshold: 100,
			expected:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BusFactor(tt.contributors, tt.threshold))
		})
	}
}

func TestBusFactorMonotonicInThreshold(t *testing.T) {
	contributors := []Contributor{
		{Login: "a", Contributions: 40},
		{Login: "b", Contributions: 30},
		{Login: "c", Contributions: 20},
		{Login: "d", Contributions: 10},
	}

	prev := 0
	for threshold := 5.0; threshold <= 100.0; threshold += 5.0 {
		bf := BusFactor(contributors, threshold)
		assert.GreaterOrEqual(t, bf, prev, "bus factor must not shrink as threshold grows (threshold=%v)", threshold)
		prev = bf
	}
}

func TestBusFactorDoesNotMutateInput(t *testing.T) {
	contributors := []Contributor{
		{Login: "small", Contributions: 1},
		{Login: "big", Contributions: 99},
	}

	BusFactor(contributors, 50)

	assert.Equal(t, "small", contributors[0].Login)
	assert.Equal(t, "big", contributors[1].Login)
}
