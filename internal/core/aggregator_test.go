package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		counts EmotionCounts
		want   float64
	}{
		{
			name:   "no messages is neutral",
			counts: NewEmotionCounts(),
			want:   3,
		},
		{
			name:   "nil counts is neutral",
			counts: nil,
			want:   3,
		},
		{
			name:   "one angry three happy",
			counts: EmotionCounts{Angry: 1, Happy: 3},
			want:   4.0,
		},
		{
			name:   "all angry",
			counts: EmotionCounts{Angry: 7},
			want:   1,
		},
		{
			name:   "all happy",
			counts: EmotionCounts{Happy: 2},
			want:   5,
		},
		{
			name:   "one of each",
			counts: EmotionCounts{Angry: 1, Threat: 1, Neutral: 1, Joy: 1, Happy: 1},
			want:   3,
		},
		{
			name:   "threat and joy",
			counts: EmotionCounts{Threat: 3, Joy: 1},
			want:   (3*2 + 4) / 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.counts), 1e-12)
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		counts := NewEmotionCounts()
		weighted, total := 0, 0
		for j, emotion := range Emotions {
			n := rng.Intn(20)
			counts[emotion] = n
			weighted += n * (j + 1)
			total += n
		}

		score := Score(counts)
		if total == 0 {
			assert.Equal(t, NeutralScore, score)
			continue
		}
		assert.GreaterOrEqual(t, score, 1.0)
		assert.LessOrEqual(t, score, 5.0)
		assert.InDelta(t, float64(weighted)/float64(total), score, 1e-12)
	}
}

func TestNewGauge(t *testing.T) {
	gauge := NewGauge(4.0)

	assert.Equal(t, 1.0, gauge.Min)
	assert.Equal(t, 5.0, gauge.Max)
	assert.Equal(t, 4.0, gauge.Value)
	assert.Equal(t, 4.0, gauge.Threshold.Value)
	assert.Equal(t, []string{"Angry", "Threat", "Neutral", "Joy", "Happy"}, gauge.TickLabels)
	require.Len(t, gauge.Bands, 4)
	assert.Equal(t, "red", gauge.Bands[0].Color)
	assert.Equal(t, "orange", gauge.Bands[1].Color)
	assert.Equal(t, "yellow", gauge.Bands[2].Color)
	assert.Equal(t, "green", gauge.Bands[3].Color)
}

func TestGaugeBandFor(t *testing.T) {
	gauge := NewGauge(3)

	tests := []struct {
		value float64
		color string
	}{
		{1, "red"},
		{1.99, "red"},
		{2, "orange"},
		{3, "yellow"},
		{3.5, "yellow"},
		{4, "green"},
		{5, "green"},
	}
	for _, tt := range tests {
		band, ok := gauge.BandFor(tt.value)
		require.True(t, ok, "value %v", tt.value)
		assert.Equal(t, tt.color, band.Color, "value %v", tt.value)
	}

	_, ok := gauge.BandFor(5.5)
	assert.False(t, ok)
	_, ok = gauge.BandFor(0.5)
	assert.False(t, ok)
}
