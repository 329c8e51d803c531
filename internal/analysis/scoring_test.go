package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreNoFights(t *testing.T) {
	card := Score(&AggregateResult{})
	require.Zero(t, card.Score)
	require.Equal(t, "Still Noob", card.Tier)
}

func TestScorePerfectRun(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 10},
		Metrics: Metrics{
			AvgParse:           99,
			DeathsPerFight:     0,
			FlaskRate:          1,
			FoodRate:           1,
			PotionRate:         1,
			InterruptsPerFight: 3,
			DispelsPerFight:    1,
			DPSVariation:       0.05,
		},
	}

	card := Score(agg)
	require.InDelta(t, 99, card.Components.Performance, 0.01)
	require.InDelta(t, 100, card.Components.Survival, 0.01)
	require.InDelta(t, 100, card.Components.Preparation, 0.01)
	require.InDelta(t, 100, card.Components.Utility, 0.01) // 3*30 + 1*20, clamped
	require.InDelta(t, 90, card.Components.Consistency, 0.01)
	require.Greater(t, card.Score, 95.0)
	require.Equal(t, "Elite", card.Tier)
}

func TestScoreComponentMath(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 4},
		Metrics: Metrics{
			AvgParse:           50,
			DeathsPerFight:     0.4, // 100 - 0.4*125 = 50
			FlaskRate:          0.5, // prep: 100*(0.4*0.5 + 0.3*1 + 0.3*0) = 50
			FoodRate:           1,
			PotionRate:         0,
			InterruptsPerFight: 1,    // 30 + 20 = 50
			DispelsPerFight:    1,    //
			DPSVariation:       0.25, // 100 - 50 = 50
		},
	}

	card := Score(agg)
	require.InDelta(t, 50, card.Components.Performance, 0.01)
	require.InDelta(t, 50, card.Components.Survival, 0.01)
	require.InDelta(t, 50, card.Components.Preparation, 0.01)
	require.InDelta(t, 50, card.Components.Utility, 0.01)
	require.InDelta(t, 50, card.Components.Consistency, 0.01)
	require.InDelta(t, 50, card.Score, 0.01)
	require.Equal(t, "Apprentice", card.Tier)
}

func TestScoreParseFallback(t *testing.T) {
	agg := &AggregateResult{
		Totals:     Totals{Fights: 2},
		Comparison: Comparison{DPSPercentile: 65},
	}

	card := Score(agg)
	require.InDelta(t, 65, card.Components.Performance, 0.01)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Elite"},
		{95, "Elite"},
		{94.9, "Hero"},
		{85, "Hero"},
		{70, "Veteran"},
		{55, "Adventurer"},
		{40, "Apprentice"},
		{39.9, "Still Noob"},
		{0, "Still Noob"},
		{-5, "Still Noob"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TierFor(tt.score), "score %.1f", tt.score)
	}
}

func TestClampScore(t *testing.T) {
	require.Equal(t, 0.0, clampScore(-10))
	require.Equal(t, 42.0, clampScore(42))
	require.Equal(t, 100.0, clampScore(250))
}
