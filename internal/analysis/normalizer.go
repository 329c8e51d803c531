package analysis

import (
	"stillnoob/internal/api"
)

// PlayerSummary is one character's numeric summary for a single fight,
// derived from the raw combat-log tables.
type PlayerSummary struct {
	Name            string
	Server          string
	Class           string
	Spec            string
	Role            string // "tank", "healer", "dps"
	DPS             float64
	HPS             float64
	DamageTaken     float64
	Deaths          int
	Interrupts      int
	Dispels         int
	ParsePercentile float64
	FlaskUp         bool
	FoodUp          bool
	PotionUsed      bool
}

// NormalizeFight flattens the per-fight tables into one PlayerSummary
// per participant. Fights with zero recorded duration produce nothing.
func NormalizeFight(tables *api.FightTables, ranking *api.FightRanking) []PlayerSummary {
	durationMs := tables.Summary.Data.TotalTime
	if durationMs <= 0 {
		return nil
	}
	seconds := float64(durationMs) / 1000

	damage := totalsByName(tables.Damage)
	healing := totalsByName(tables.Healing)
	taken := totalsByName(tables.DamageTaken)
	interrupts := totalsByName(tables.Interrupts)
	dispels := totalsByName(tables.Dispels)

	// the deaths table carries one entry per death event
	deaths := make(map[string]int)
	for _, e := range tables.Deaths.Data.Entries {
		deaths[e.Name]++
	}

	parses := parsesByName(ranking)

	var summaries []PlayerSummary
	details := tables.Summary.Data.PlayerDetails
	for _, group := range []struct {
		role    string
		players []api.SummaryPlayer
	}{
		{"tank", details.Tanks},
		{"healer", details.Healers},
		{"dps", details.DPS},
	} {
		for _, p := range group.players {
			s := PlayerSummary{
				Name:            p.Name,
				Server:          p.Server,
				Class:           p.Type,
				Role:            group.role,
				DPS:             damage[p.Name] / seconds,
				HPS:             healing[p.Name] / seconds,
				DamageTaken:     taken[p.Name],
				Deaths:          deaths[p.Name],
				Interrupts:      int(interrupts[p.Name]),
				Dispels:         int(dispels[p.Name]),
				ParsePercentile: parses[p.Name],
				PotionUsed:      p.CombatantInfo.PotionUse > 0,
			}
			if len(p.Specs) > 0 {
				s.Spec = p.Specs[0]
			}
			for _, aura := range p.CombatantInfo.Auras {
				if isFlaskAura(aura.Ability, aura.Name) {
					s.FlaskUp = true
				}
				if isFoodAura(aura.Name) {
					s.FoodUp = true
				}
			}
			summaries = append(summaries, s)
		}
	}

	return summaries
}

func totalsByName(table api.EntryTable) map[string]float64 {
	totals := make(map[string]float64, len(table.Data.Entries))
	for _, e := range table.Data.Entries {
		totals[e.Name] += e.Total
	}
	return totals
}

func parsesByName(ranking *api.FightRanking) map[string]float64 {
	parses := make(map[string]float64)
	if ranking == nil {
		return parses
	}
	for _, role := range []api.RoleRanking{
		ranking.Roles.Tanks,
		ranking.Roles.Healers,
		ranking.Roles.DPS,
	} {
		for _, c := range role.Characters {
			parses[c.Name] = c.RankPercent
		}
	}
	return parses
}
