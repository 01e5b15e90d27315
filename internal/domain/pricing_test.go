package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name         string
		pricePerHour float64
		period       Interval
		want         float64
	}{
		{
			name:         "two hours at 100",
			pricePerHour: 100,
			period:       Interval{Start: ts(10), End: ts(12)},
			want:         200,
		},
		{
			name:         "ninety minutes at 100",
			pricePerHour: 100,
			period:       Interval{Start: ts(10), End: ts(10).Add(90 * time.Minute)},
			want:         150,
		},
		{
			name:         "fifteen minutes at 100",
			pricePerHour: 100,
			period:       Interval{Start: ts(10), End: ts(10).Add(15 * time.Minute)},
			want:         25,
		},
		{
			name:         "zero rate",
			pricePerHour: 0,
			period:       Interval{Start: ts(10), End: ts(12)},
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePrice(tt.pricePerHour, tt.period)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputePriceDeterministic(t *testing.T) {
	period := Interval{Start: ts(10), End: ts(10).Add(7*time.Hour + 13*time.Minute)}

	first, err := ComputePrice(99.99, period)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		got, err := ComputePrice(99.99, period)
		require.NoError(t, err)
		assert.Equal(t, first, got, "одинаковые аргументы - одинаковый результат")
	}
}

func TestComputePriceLinearInDuration(t *testing.T) {
	rate := 100.0
	oneHour, err := ComputePrice(rate, Interval{Start: ts(10), End: ts(11)})
	require.NoError(t, err)

	twoHours, err := ComputePrice(rate, Interval{Start: ts(10), End: ts(12)})
	require.NoError(t, err)

	assert.InDelta(t, 2*oneHour, twoHours, 1e-9)
}

func TestComputePriceErrors(t *testing.T) {
	t.Run("negative rate", func(t *testing.T) {
		_, err := ComputePrice(-1, Interval{Start: ts(10), End: ts(12)})
		assert.ErrorIs(t, err, ErrNegativeRate)
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := ComputePrice(100, Interval{Start: ts(12), End: ts(10)})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{123.456, 123.46},
		{123.454, 123.45},
		{0.005, 0.01},
		{150, 150},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundPrice(tt.in))
	}
}
