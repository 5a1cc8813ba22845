package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/hogdash-go/internal/models"
)

func TestTrendDeltas(t *testing.T) {
	deltas := TrendDeltas([]float64{10, 15, 12})
	require.Len(t, deltas, 2)

	assert.Equal(t, 5.0, deltas[0].Abs)
	assert.True(t, deltas[0].PctOK)
	assert.InDelta(t, 50.0, deltas[0].Pct, 1e-9)

	assert.Equal(t, -3.0, deltas[1].Abs)
	assert.True(t, deltas[1].PctOK)
	assert.InDelta(t, -20.0, deltas[1].Pct, 1e-9)
}

func TestTrendDeltasUndefinedPctOnZeroBase(t *testing.T) {
	deltas := TrendDeltas([]float64{0, 7})
	require.Len(t, deltas, 1)
	assert.Equal(t, 7.0, deltas[0].Abs)
	assert.False(t, deltas[0].PctOK)
}

func TestTrendDeltasEmpty(t *testing.T) {
	assert.Nil(t, TrendDeltas(nil))
	assert.Nil(t, TrendDeltas([]float64{42}))
}

func TestRollingAverageShortWindow(t *testing.T) {
	avg, ok := RollingAverage([]float64{4, 6, 8}, 7)
	require.True(t, ok)
	assert.InDelta(t, 6.0, avg, 1e-9)
}

func TestRollingAverageTakesLastN(t *testing.T) {
	avg, ok := RollingAverage([]float64{100, 1, 2, 3}, 3)
	require.True(t, ok)
	assert.InDelta(t, 2.0, avg, 1e-9)
}

func TestRollingAverageEmpty(t *testing.T) {
	_, ok := RollingAverage(nil, 7)
	assert.False(t, ok)
}

func TestTopNStableTies(t *testing.T) {
	rows := []models.BreakdownRow{
		{Label: "A", Count: 5},
		{Label: "B", Count: 9},
		{Label: "C", Count: 9},
		{Label: "D", Count: 1},
	}
	top := TopN(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Label)
	assert.Equal(t, "C", top[1].Label)
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	rows := []models.BreakdownRow{{Label: "A", Count: 1}, {Label: "B", Count: 2}}
	_ = TopN(rows, 2)
	assert.Equal(t, "A", rows[0].Label)
}

func TestTopNEmpty(t *testing.T) {
	assert.Nil(t, TopN(nil, 5))
}

func TestHourlyHistogram(t *testing.T) {
	rows := []models.MetricRow{
		{Date: "21-Nov-2025 13:00", Value: 4},
		{Date: "22-Nov-2025 13:00", Value: 6},
		{Date: "21-Nov-2025 02:00", Value: 3},
	}
	buckets, ok := HourlyHistogram(rows)
	require.True(t, ok)
	require.Len(t, buckets, 24)
	assert.Equal(t, 10.0, buckets[13].Total)
	assert.Equal(t, 3.0, buckets[2].Total)
	assert.Equal(t, 0.0, buckets[0].Total)
}

func TestHourlyHistogramEmpty(t *testing.T) {
	_, ok := HourlyHistogram(nil)
	assert.False(t, ok)

	// etiquetas sin hora no producen buckets
	_, ok = HourlyHistogram([]models.MetricRow{{Date: "2025-11-21", Value: 5}})
	assert.False(t, ok)
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 0.0, SafeDiv(10, 0))
	assert.InDelta(t, 2.5, SafeDiv(5, 2), 1e-9)
}
