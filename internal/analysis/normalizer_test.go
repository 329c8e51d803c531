package analysis

import (
	"encoding/json"
	"testing"

	"stillnoob/internal/api"

	"github.com/stretchr/testify/require"
)

const fightTablesJSON = `{
  "summary": {
    "data": {
      "totalTime": 60000,
      "playerDetails": {
        "tanks": [
          {
            "name": "Bearly",
            "server": "Proudmoore",
            "type": "Druid",
            "specs": ["Guardian"],
            "combatantInfo": {"auras": [], "potionUse": 0}
          }
        ],
        "healers": [],
        "dps": [
          {
            "name": "Thrall",
            "server": "Proudmoore",
            "type": "Shaman",
            "specs": ["Enhancement"],
            "combatantInfo": {
              "auras": [
                {"ability": 432021, "name": "Flask of Alchemical Chaos", "stacks": 1},
                {"ability": 104273, "name": "Well Fed", "stacks": 1}
              ],
              "potionUse": 2
            }
          }
        ]
      }
    }
  },
  "damage": {"data": {"entries": [
    {"name": "Thrall", "total": 600000},
    {"name": "Bearly", "total": 120000}
  ]}},
  "healing": {"data": {"entries": [{"name": "Thrall", "total": 30000}]}},
  "damageTaken": {"data": {"entries": [
    {"name": "Thrall", "total": 90000},
    {"name": "Bearly", "total": 450000}
  ]}},
  "deaths": {"data": {"entries": [
    {"name": "Thrall"},
    {"name": "Thrall"}
  ]}},
  "interrupts": {"data": {"entries": [{"name": "Thrall", "total": 3}]}},
  "dispels": {"data": {"entries": [{"name": "Bearly", "total": 1}]}}
}`

func loadFightTables(t *testing.T) *api.FightTables {
	t.Helper()
	var tables api.FightTables
	require.NoError(t, json.Unmarshal([]byte(fightTablesJSON), &tables))
	return &tables
}

func TestNormalizeFight(t *testing.T) {
	tables := loadFightTables(t)

	ranking := &api.FightRanking{}
	ranking.Roles.DPS.Characters = []api.RankedCharacter{
		{Name: "Thrall", RankPercent: 72.5},
	}

	summaries := NormalizeFight(tables, ranking)
	require.Len(t, summaries, 2)

	byName := make(map[string]PlayerSummary)
	for _, s := range summaries {
		byName[s.Name] = s
	}

	thrall := byName["Thrall"]
	require.Equal(t, "dps", thrall.Role)
	require.Equal(t, "Shaman", thrall.Class)
	require.Equal(t, "Enhancement", thrall.Spec)
	require.Equal(t, "Proudmoore", thrall.Server)
	require.InDelta(t, 10000, thrall.DPS, 0.01)
	require.InDelta(t, 500, thrall.HPS, 0.01)
	require.InDelta(t, 90000, thrall.DamageTaken, 0.01)
	require.Equal(t, 2, thrall.Deaths)
	require.Equal(t, 3, thrall.Interrupts)
	require.Equal(t, 0, thrall.Dispels)
	require.InDelta(t, 72.5, thrall.ParsePercentile, 0.01)
	require.True(t, thrall.FlaskUp)
	require.True(t, thrall.FoodUp)
	require.True(t, thrall.PotionUsed)

	bearly := byName["Bearly"]
	require.Equal(t, "tank", bearly.Role)
	require.InDelta(t, 2000, bearly.DPS, 0.01)
	require.Equal(t, 0, bearly.Deaths)
	require.Equal(t, 1, bearly.Dispels)
	require.Zero(t, bearly.ParsePercentile)
	require.False(t, bearly.FlaskUp)
	require.False(t, bearly.FoodUp)
	require.False(t, bearly.PotionUsed)
}

func TestNormalizeFightNilRanking(t *testing.T) {
	tables := loadFightTables(t)

	summaries := NormalizeFight(tables, nil)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Zero(t, s.ParsePercentile)
	}
}

func TestNormalizeFightZeroDuration(t *testing.T) {
	tables := loadFightTables(t)
	tables.Summary.Data.TotalTime = 0

	require.Nil(t, NormalizeFight(tables, nil))
}

func TestIsFlaskAura(t *testing.T) {
	tests := []struct {
		name    string
		spellID int
		aura    string
		want    bool
	}{
		{"known spell id", 432021, "", true},
		{"flask name prefix", 0, "Flask of Tempered Might", true},
		{"phial name prefix", 0, "Phial of Elemental Chaos", true},
		{"unrelated aura", 12345, "Battle Shout", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isFlaskAura(tt.spellID, tt.aura))
		})
	}
}
