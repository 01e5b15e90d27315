package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour int) time.Time {
	return time.Date(2026, 7, 1, hour, 0, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestNewInterval(t *testing.T) {
	t.Run("valid interval", func(t *testing.T) {
		iv, err := NewInterval(ts(10), ts(12))
		require.NoError(t, err)
		assert.Equal(t, ts(10), iv.Start)
		assert.Equal(t, ts(12), iv.End)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := NewInterval(ts(10), ts(10))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewInterval(ts(12), ts(10))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("zero times", func(t *testing.T) {
		_, err := NewInterval(time.Time{}, ts(10))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals",
			a:    Interval{Start: ts(10), End: ts(12)},
			b:    Interval{Start: ts(10), End: ts(12)},
			want: true,
		},
		{
			name: "partial overlap at end",
			a:    Interval{Start: ts(10), End: ts(12)},
			b:    Interval{Start: ts(11), End: ts(13)},
			want: true,
		},
		{
			name: "containment",
			a:    Interval{Start: ts(9), End: ts(14)},
			b:    Interval{Start: ts(10), End: ts(12)},
			want: true,
		},
		{
			name: "touching endpoints do not conflict",
			a:    Interval{Start: ts(10), End: ts(12)},
			b:    Interval{Start: ts(12), End: ts(14)},
			want: false,
		},
		{
			name: "touching endpoints reversed",
			a:    Interval{Start: ts(12), End: ts(14)},
			b:    Interval{Start: ts(10), End: ts(12)},
			want: false,
		},
		{
			name: "disjoint intervals",
			a:    Interval{Start: ts(8), End: ts(9)},
			b:    Interval{Start: ts(10), End: ts(12)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalDuration(t *testing.T) {
	iv := mustInterval(t, ts(10), ts(12))
	assert.Equal(t, 2*time.Hour, iv.Duration())

	half := mustInterval(t, ts(10), ts(10).Add(90*time.Minute))
	assert.Equal(t, 90*time.Minute, half.Duration())
}

func TestIntervalIsEntirelyBefore(t *testing.T) {
	iv := mustInterval(t, ts(10), ts(12))

	assert.True(t, iv.IsEntirelyBefore(ts(12)), "полуоткрытый интервал заканчивается ровно в End")
	assert.True(t, iv.IsEntirelyBefore(ts(13)))
	assert.False(t, iv.IsEntirelyBefore(ts(11)))
	assert.False(t, iv.IsEntirelyBefore(ts(10)))
}
