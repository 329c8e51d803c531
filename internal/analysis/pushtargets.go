package analysis

import (
	"sort"

	"stillnoob/internal/api"
)

type PushTarget struct {
	Dungeon       string  `json:"dungeon"`
	ShortName     string  `json:"short_name"`
	CurrentLevel  int     `json:"current_level"`
	TargetLevel   int     `json:"target_level"`
	Timed         bool    `json:"timed"`
	EstimatedGain float64 `json:"estimated_gain"`
}

// Raider.io base rating per timed key: flat floor plus a step per
// keystone level. Close enough for a push list; the site's exact curve
// also folds in affix bonuses.
const (
	ratingFloor        = 125.0
	ratingPerLevel     = 15.0
	timedSpareForPlus2 = 0.2
)

func ratingForLevel(level int) float64 {
	if level <= 0 {
		return 0
	}
	return ratingFloor + ratingPerLevel*float64(level)
}

// PushTargets suggests the next keystone per dungeon from the best
// recorded runs. Timed with 20%+ spare jumps two levels, timed jumps
// one, depleted keys are retried at the same level.
func PushTargets(best []api.RioRun) []PushTarget {
	targets := make([]PushTarget, 0, len(best))
	for _, run := range best {
		timed := run.NumKeystoneUpgrades > 0
		target := run.MythicLevel
		switch {
		case timed && spareFraction(run) >= timedSpareForPlus2:
			target += 2
		case timed:
			target++
		}

		gain := ratingForLevel(target) - run.Score
		if gain < 0 {
			gain = 0
		}

		targets = append(targets, PushTarget{
			Dungeon:       run.Dungeon,
			ShortName:     run.ShortName,
			CurrentLevel:  run.MythicLevel,
			TargetLevel:   target,
			Timed:         timed,
			EstimatedGain: gain,
		})
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].EstimatedGain > targets[j].EstimatedGain })
	return targets
}

func spareFraction(run api.RioRun) float64 {
	if run.ParTimeMs <= 0 {
		return 0
	}
	return float64(run.ParTimeMs-run.ClearTimeMs) / float64(run.ParTimeMs)
}
