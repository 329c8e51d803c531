package analysis

import (
	"testing"
	"time"

	"stillnoob/internal/domain"

	"github.com/stretchr/testify/require"
)

// record builds one cohort row: the fight plus a single participant's
// performance in it.
func record(fightID string, encounterID int, boss string, kill bool, startedAt time.Time, p domain.FightPerformance) domain.FightRecord {
	p.FightID = fightID
	return domain.FightRecord{
		Fight: domain.Fight{
			ID:          fightID,
			FightID:     1,
			EncounterID: encounterID,
			BossName:    boss,
			Kill:        kill,
			StartedAt:   startedAt,
		},
		Performance: p,
	}
}

func TestAggregateEmpty(t *testing.T) {
	result := Aggregate("char-1", "us", nil)
	require.NotNil(t, result)
	require.Zero(t, result.Totals.Fights)
	require.Empty(t, result.Bosses)
	require.Empty(t, result.Weekly)
}

func TestAggregateTotalsAndBosses(t *testing.T) {
	week1 := time.Date(2026, 8, 12, 19, 0, 0, 0, time.UTC)
	week2 := time.Date(2026, 8, 19, 19, 0, 0, 0, time.UTC)

	records := []domain.FightRecord{
		record("f1", 3009, "Ulgrax", false, week1, domain.FightPerformance{
			CharacterID: "char-1", Role: "dps", DPS: 800_000, HPS: 10_000,
			Deaths: 1, Interrupts: 2, ParsePercentile: 40,
			FlaskUp: true, FoodUp: true,
		}),
		record("f2", 3009, "Ulgrax", true, week1, domain.FightPerformance{
			CharacterID: "char-1", Role: "dps", DPS: 1_000_000, HPS: 10_000,
			Interrupts: 1, ParsePercentile: 60,
			FlaskUp: true, FoodUp: true, PotionUsed: true,
		}),
		record("f3", 3010, "Bloodbound Horror", true, week2, domain.FightPerformance{
			CharacterID: "char-1", Role: "dps", DPS: 900_000, HPS: 10_000,
			ParsePercentile: 50, FlaskUp: true,
		}),
	}

	result := Aggregate("char-1", "us", records)

	require.Equal(t, 3, result.Totals.Fights)
	require.Equal(t, 2, result.Totals.Kills)
	require.Equal(t, 1, result.Totals.Wipes)
	require.Equal(t, 1, result.Totals.Deaths)
	require.InDelta(t, 900_000, result.Totals.AvgDPS, 0.01)
	require.InDelta(t, 50, result.Totals.AvgParse, 0.01)

	require.Len(t, result.Bosses, 2)
	ulgrax := result.Bosses[0]
	require.Equal(t, 3009, ulgrax.EncounterID)
	require.Equal(t, 2, ulgrax.Attempts)
	require.Equal(t, 1, ulgrax.Kills)
	require.InDelta(t, 900_000, ulgrax.AvgDPS, 0.01)
	require.InDelta(t, 1_000_000, ulgrax.BestDPS, 0.01)
	require.InDelta(t, 0.5, ulgrax.DeathRate, 0.001)

	require.Len(t, result.Weekly, 2)
	require.True(t, result.Weekly[0].WeekStart.Before(result.Weekly[1].WeekStart))
	require.Equal(t, 2, result.Weekly[0].Fights)
	require.Equal(t, 1, result.Weekly[1].Fights)

	m := result.Metrics
	require.InDelta(t, 1.0/3, m.DeathsPerFight, 0.001)
	require.InDelta(t, 1.0, m.InterruptsPerFight, 0.001)
	require.InDelta(t, 1.0, m.FlaskRate, 0.001)
	require.InDelta(t, 2.0/3, m.FoodRate, 0.001)
	require.InDelta(t, 1.0/3, m.PotionRate, 0.001)
	require.InDelta(t, 50, m.AvgParse, 0.01)
	require.Greater(t, m.DPSVariation, 0.0)
}

func TestAggregateComparison(t *testing.T) {
	started := time.Date(2026, 8, 12, 19, 0, 0, 0, time.UTC)

	// subject plus two same-role raid members in the same fight; one
	// healer row must stay out of the dps cohort
	records := []domain.FightRecord{
		record("f1", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterID: "char-1", CharacterName: "Thrall", Role: "dps", DPS: 1_000_000,
		}),
		record("f1", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterName: "Jaina", Role: "dps", DPS: 800_000,
		}),
		record("f1", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterName: "Rexxar", Role: "dps", DPS: 1_200_000,
		}),
		record("f1", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterName: "Anduin", Role: "healer", DPS: 200_000, HPS: 1_500_000,
		}),
	}

	result := Aggregate("char-1", "us", records)

	// above one of two cohort peers
	require.InDelta(t, 50, result.Comparison.DPSPercentile, 0.01)
	// cohort dps values 800k, 1000k, 1200k: median is own value
	require.InDelta(t, 1.0, result.Comparison.DPSVsMedian, 0.001)
}

func TestAggregateComparisonRoleSwap(t *testing.T) {
	started := time.Date(2026, 8, 12, 19, 0, 0, 0, time.UTC)

	// subject heals the first pull and dps's the second; each fight
	// must compare against the cohort of the role actually played
	records := []domain.FightRecord{
		record("f1", 3009, "Ulgrax", false, started, domain.FightPerformance{
			CharacterID: "char-1", CharacterName: "Mythra", Role: "healer",
			DPS: 300_000, HPS: 1_600_000,
		}),
		record("f1", 3009, "Ulgrax", false, started, domain.FightPerformance{
			CharacterName: "Anduin", Role: "healer", DPS: 200_000, HPS: 1_400_000,
		}),
		record("f1", 3009, "Ulgrax", false, started, domain.FightPerformance{
			CharacterName: "Rexxar", Role: "dps", DPS: 1_200_000,
		}),
		record("f2", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterID: "char-1", CharacterName: "Mythra", Role: "dps", DPS: 1_000_000,
		}),
		record("f2", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterName: "Jaina", Role: "dps", DPS: 900_000,
		}),
	}

	result := Aggregate("char-1", "us", records)

	// tops the healer cohort on f1 and the dps cohort on f2
	require.InDelta(t, 100, result.Comparison.DPSPercentile, 0.01)
}

func TestAggregateSoloCohort(t *testing.T) {
	started := time.Date(2026, 8, 12, 19, 0, 0, 0, time.UTC)
	records := []domain.FightRecord{
		record("f1", 3009, "Ulgrax", true, started, domain.FightPerformance{
			CharacterID: "char-1", Role: "dps", DPS: 500_000,
		}),
	}

	result := Aggregate("char-1", "us", records)
	require.InDelta(t, 100, result.Comparison.DPSPercentile, 0.01)
	require.InDelta(t, 1.0, result.Comparison.DPSVsMedian, 0.001)
}

func TestRaidWeekStart(t *testing.T) {
	tests := []struct {
		name   string
		region string
		at     time.Time
		want   time.Time
	}{
		{
			name:   "us mid week",
			region: "us",
			at:     time.Date(2026, 8, 14, 2, 0, 0, 0, time.UTC), // Friday
			want:   time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "us before tuesday reset",
			region: "us",
			at:     time.Date(2026, 8, 11, 14, 59, 0, 0, time.UTC),
			want:   time.Date(2026, 8, 4, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "us at reset instant",
			region: "us",
			at:     time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC),
			want:   time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "eu mid week",
			region: "eu",
			at:     time.Date(2026, 8, 14, 2, 0, 0, 0, time.UTC),
			want:   time.Date(2026, 8, 12, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "eu before wednesday reset",
			region: "eu",
			at:     time.Date(2026, 8, 12, 3, 0, 0, 0, time.UTC),
			want:   time.Date(2026, 8, 5, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "kr late reset",
			region: "kr",
			at:     time.Date(2026, 8, 12, 21, 0, 0, 0, time.UTC),
			want:   time.Date(2026, 8, 5, 22, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RaidWeekStart(tt.at, tt.region))
		})
	}
}

func TestPercentileAmong(t *testing.T) {
	require.InDelta(t, 100, percentileAmong(nil, 50), 0.01)
	require.InDelta(t, 50, percentileAmong([]float64{10, 30}, 20), 0.01)
	require.InDelta(t, 0, percentileAmong([]float64{10, 30}, 5), 0.01)
	require.InDelta(t, 100, percentileAmong([]float64{10, 30}, 40), 0.01)
}

func TestMedian(t *testing.T) {
	require.InDelta(t, 0, median(nil), 0.001)
	require.InDelta(t, 5, median([]float64{5}), 0.001)
	require.InDelta(t, 2.5, median([]float64{3, 1, 2, 4}), 0.001)
	require.InDelta(t, 2, median([]float64{3, 1, 2}), 0.001)
}

func TestVariation(t *testing.T) {
	require.InDelta(t, 0, variation(nil), 0.001)
	require.InDelta(t, 0, variation([]float64{100}), 0.001)
	require.InDelta(t, 0, variation([]float64{100, 100, 100}), 0.001)
	// stddev of {80,120} is 20, mean 100
	require.InDelta(t, 0.2, variation([]float64{80, 120}), 0.001)
}
