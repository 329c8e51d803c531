package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tipIDs(tips []Tip) []string {
	ids := make([]string, 0, len(tips))
	for _, tip := range tips {
		ids = append(ids, tip.ID)
	}
	return ids
}

func TestRecommendNoFights(t *testing.T) {
	require.Nil(t, Recommend(&AggregateResult{}))
}

func TestRecommendCleanRecord(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 10},
		Metrics: Metrics{
			DeathsPerFight:     0.1,
			FlaskRate:          1,
			FoodRate:           1,
			PotionRate:         0.9,
			AvgParse:           80,
			InterruptsPerFight: 2,
			DPSVariation:       0.1,
		},
	}
	require.Empty(t, Recommend(agg))
}

func TestRecommendFiresMatchingRules(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 10},
		Metrics: Metrics{
			DeathsPerFight:     1.2, // fires deaths-high
			FlaskRate:          0.3, // fires flask-missing
			FoodRate:           1,
			PotionRate:         1,
			AvgParse:           60,
			InterruptsPerFight: 2,
			DPSVariation:       0.1,
		},
	}

	tips := Recommend(agg)
	require.ElementsMatch(t, []string{"deaths-high", "flask-missing"}, tipIDs(tips))
	for _, tip := range tips {
		require.Greater(t, tip.Priority, 0.0)
		require.NotEmpty(t, tip.Message)
		require.NotEmpty(t, tip.Category)
	}
}

func TestRecommendOrdering(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 10},
		Metrics: Metrics{
			DeathsPerFight:     2, // gap 1.7, weight 30 -> 51
			FlaskRate:          0, // gap 0.8, weight 20 -> 16
			FoodRate:           0, // gap 0.7, weight 12 -> 8.4
			PotionRate:         1,
			AvgParse:           60,
			InterruptsPerFight: 2,
			DPSVariation:       0.1,
		},
	}

	tips := Recommend(agg)
	require.Equal(t, []string{"deaths-high", "flask-missing", "food-missing"}, tipIDs(tips))
	for i := 1; i < len(tips); i++ {
		require.GreaterOrEqual(t, tips[i-1].Priority, tips[i].Priority)
	}
}

func TestRecommendUnrankedParse(t *testing.T) {
	// zero AvgParse means no fight had rankings; an otherwise clean
	// record must not be told its parse is low
	agg := &AggregateResult{
		Totals: Totals{Fights: 5},
		Metrics: Metrics{
			DeathsPerFight:     0.1,
			FlaskRate:          1,
			FoodRate:           1,
			PotionRate:         1,
			AvgParse:           0,
			InterruptsPerFight: 2,
			DPSVariation:       0.1,
		},
	}

	require.Empty(t, Recommend(agg))
}

func TestRecommendLowParse(t *testing.T) {
	agg := &AggregateResult{
		Totals: Totals{Fights: 5},
		Metrics: Metrics{
			DeathsPerFight:     0.1,
			FlaskRate:          1,
			FoodRate:           1,
			PotionRate:         1,
			AvgParse:           10,
			InterruptsPerFight: 2,
			DPSVariation:       0.1,
		},
	}

	tips := Recommend(agg)
	require.Equal(t, []string{"parse-low"}, tipIDs(tips))
	require.InDelta(t, 22.5, tips[0].Priority, 0.01) // (25-10) * 1.5
}
