package analysis

import (
	"math"
	"sort"
	"time"

	"stillnoob/internal/domain"
)

type AggregateResult struct {
	Totals     Totals          `json:"totals"`
	Bosses     []BossBreakdown `json:"bosses"`
	Weekly     []WeeklyTrend   `json:"weekly"`
	Comparison Comparison      `json:"comparison"`
	Metrics    Metrics         `json:"metrics"`
}

type Totals struct {
	Fights   int     `json:"fights"`
	Kills    int     `json:"kills"`
	Wipes    int     `json:"wipes"`
	Deaths   int     `json:"deaths"`
	AvgDPS   float64 `json:"avg_dps"`
	AvgHPS   float64 `json:"avg_hps"`
	AvgParse float64 `json:"avg_parse"`
}

type BossBreakdown struct {
	EncounterID int     `json:"encounter_id"`
	BossName    string  `json:"boss_name"`
	Attempts    int     `json:"attempts"`
	Kills       int     `json:"kills"`
	AvgDPS      float64 `json:"avg_dps"`
	BestDPS     float64 `json:"best_dps"`
	AvgHPS      float64 `json:"avg_hps"`
	DeathRate   float64 `json:"death_rate"`
	AvgParse    float64 `json:"avg_parse"`
}

type WeeklyTrend struct {
	WeekStart time.Time `json:"week_start"`
	Fights    int       `json:"fights"`
	Deaths    int       `json:"deaths"`
	AvgDPS    float64   `json:"avg_dps"`
	AvgHPS    float64   `json:"avg_hps"`
	AvgParse  float64   `json:"avg_parse"`
}

// Comparison positions the character inside its raid group: percentile
// and vs-median ratio within each fight's same-role cohort, averaged
// across fights.
type Comparison struct {
	DPSPercentile float64 `json:"dps_percentile"`
	HPSPercentile float64 `json:"hps_percentile"`
	DPSVsMedian   float64 `json:"dps_vs_median"`
	HPSVsMedian   float64 `json:"hps_vs_median"`
}

// Metrics are the scorer and recommender inputs.
type Metrics struct {
	DeathsPerFight     float64 `json:"deaths_per_fight"`
	FlaskRate          float64 `json:"flask_rate"`
	FoodRate           float64 `json:"food_rate"`
	PotionRate         float64 `json:"potion_rate"`
	InterruptsPerFight float64 `json:"interrupts_per_fight"`
	DispelsPerFight    float64 `json:"dispels_per_fight"`
	AvgParse           float64 `json:"avg_parse"`
	DPSVariation       float64 `json:"dps_variation"` // coefficient of variation
}

// Aggregate rolls the cohort records up into boss, weekly and all-time
// statistics for the given character. Pure; empty input yields a
// zero-valued result.
func Aggregate(characterID, region string, records []domain.FightRecord) *AggregateResult {
	result := &AggregateResult{}

	own, cohorts := splitRecords(characterID, records)
	if len(own) == 0 {
		return result
	}

	result.Totals = totals(own)
	result.Bosses = bossBreakdowns(own)
	result.Weekly = weeklyTrends(own, region)
	result.Comparison = compare(own, cohorts)
	result.Metrics = metrics(own)

	return result
}

// splitRecords separates the character's own rows from the per-fight
// same-role cohorts they are compared against. The role is resolved
// per fight, so a character who healed one pull and dps'd the next is
// compared against the cohort they actually played in.
func splitRecords(characterID string, records []domain.FightRecord) ([]domain.FightRecord, map[string][]domain.FightPerformance) {
	var own []domain.FightRecord
	roleByFight := make(map[string]string)
	for _, r := range records {
		if r.Performance.CharacterID == characterID {
			own = append(own, r)
			roleByFight[r.Fight.ID] = r.Performance.Role
		}
	}

	cohorts := make(map[string][]domain.FightPerformance)
	for _, r := range records {
		if role, ok := roleByFight[r.Fight.ID]; ok && r.Performance.Role == role {
			cohorts[r.Fight.ID] = append(cohorts[r.Fight.ID], r.Performance)
		}
	}
	return own, cohorts
}

func totals(own []domain.FightRecord) Totals {
	t := Totals{Fights: len(own)}
	var dps, hps, parse float64
	parsed := 0
	for _, r := range own {
		if r.Fight.Kill {
			t.Kills++
		} else {
			t.Wipes++
		}
		t.Deaths += r.Performance.Deaths
		dps += r.Performance.DPS
		hps += r.Performance.HPS
		if r.Performance.ParsePercentile > 0 {
			parse += r.Performance.ParsePercentile
			parsed++
		}
	}
	n := float64(len(own))
	t.AvgDPS = dps / n
	t.AvgHPS = hps / n
	if parsed > 0 {
		t.AvgParse = parse / float64(parsed)
	}
	return t
}

func bossBreakdowns(own []domain.FightRecord) []BossBreakdown {
	type acc struct {
		b      BossBreakdown
		dps    float64
		hps    float64
		deaths int
		parse  float64
		parsed int
	}
	byBoss := make(map[int]*acc)
	var order []int

	for _, r := range own {
		a, ok := byBoss[r.Fight.EncounterID]
		if !ok {
			a = &acc{b: BossBreakdown{
				EncounterID: r.Fight.EncounterID,
				BossName:    r.Fight.BossName,
			}}
			byBoss[r.Fight.EncounterID] = a
			order = append(order, r.Fight.EncounterID)
		}
		a.b.Attempts++
		if r.Fight.Kill {
			a.b.Kills++
		}
		a.dps += r.Performance.DPS
		a.hps += r.Performance.HPS
		a.deaths += r.Performance.Deaths
		if r.Performance.DPS > a.b.BestDPS {
			a.b.BestDPS = r.Performance.DPS
		}
		if r.Performance.ParsePercentile > 0 {
			a.parse += r.Performance.ParsePercentile
			a.parsed++
		}
	}

	bosses := make([]BossBreakdown, 0, len(order))
	for _, id := range order {
		a := byBoss[id]
		n := float64(a.b.Attempts)
		a.b.AvgDPS = a.dps / n
		a.b.AvgHPS = a.hps / n
		a.b.DeathRate = float64(a.deaths) / n
		if a.parsed > 0 {
			a.b.AvgParse = a.parse / float64(a.parsed)
		}
		bosses = append(bosses, a.b)
	}
	return bosses
}

func weeklyTrends(own []domain.FightRecord, region string) []WeeklyTrend {
	type acc struct {
		t      WeeklyTrend
		dps    float64
		hps    float64
		parse  float64
		parsed int
	}
	byWeek := make(map[time.Time]*acc)

	for _, r := range own {
		week := RaidWeekStart(r.Fight.StartedAt, region)
		a, ok := byWeek[week]
		if !ok {
			a = &acc{t: WeeklyTrend{WeekStart: week}}
			byWeek[week] = a
		}
		a.t.Fights++
		a.t.Deaths += r.Performance.Deaths
		a.dps += r.Performance.DPS
		a.hps += r.Performance.HPS
		if r.Performance.ParsePercentile > 0 {
			a.parse += r.Performance.ParsePercentile
			a.parsed++
		}
	}

	weeks := make([]WeeklyTrend, 0, len(byWeek))
	for _, a := range byWeek {
		n := float64(a.t.Fights)
		a.t.AvgDPS = a.dps / n
		a.t.AvgHPS = a.hps / n
		if a.parsed > 0 {
			a.t.AvgParse = a.parse / float64(a.parsed)
		}
		weeks = append(weeks, a.t)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart.Before(weeks[j].WeekStart) })
	return weeks
}

func compare(own []domain.FightRecord, cohorts map[string][]domain.FightPerformance) Comparison {
	var c Comparison
	var dpsPct, hpsPct, dpsMed, hpsMed float64
	pctN, medN := 0, 0

	for _, r := range own {
		cohort := cohorts[r.Fight.ID]
		var dpsValues, hpsValues []float64
		for _, p := range cohort {
			if p.CharacterID == r.Performance.CharacterID {
				continue
			}
			dpsValues = append(dpsValues, p.DPS)
			hpsValues = append(hpsValues, p.HPS)
		}

		dpsPct += percentileAmong(dpsValues, r.Performance.DPS)
		hpsPct += percentileAmong(hpsValues, r.Performance.HPS)
		pctN++

		if med := median(append(dpsValues, r.Performance.DPS)); med > 0 {
			dpsMed += r.Performance.DPS / med
			hpsMedVal := median(append(hpsValues, r.Performance.HPS))
			if hpsMedVal > 0 {
				hpsMed += r.Performance.HPS / hpsMedVal
			} else {
				hpsMed += 1
			}
			medN++
		}
	}

	if pctN > 0 {
		c.DPSPercentile = dpsPct / float64(pctN)
		c.HPSPercentile = hpsPct / float64(pctN)
	}
	if medN > 0 {
		c.DPSVsMedian = dpsMed / float64(medN)
		c.HPSVsMedian = hpsMed / float64(medN)
	}
	return c
}

func metrics(own []domain.FightRecord) Metrics {
	var m Metrics
	n := float64(len(own))
	if n == 0 {
		return m
	}

	var deaths, interrupts, dispels int
	var flask, food, potion int
	var parse float64
	parsed := 0
	dpsValues := make([]float64, 0, len(own))

	for _, r := range own {
		deaths += r.Performance.Deaths
		interrupts += r.Performance.Interrupts
		dispels += r.Performance.Dispels
		if r.Performance.FlaskUp {
			flask++
		}
		if r.Performance.FoodUp {
			food++
		}
		if r.Performance.PotionUsed {
			potion++
		}
		if r.Performance.ParsePercentile > 0 {
			parse += r.Performance.ParsePercentile
			parsed++
		}
		dpsValues = append(dpsValues, r.Performance.DPS)
	}

	m.DeathsPerFight = float64(deaths) / n
	m.InterruptsPerFight = float64(interrupts) / n
	m.DispelsPerFight = float64(dispels) / n
	m.FlaskRate = float64(flask) / n
	m.FoodRate = float64(food) / n
	m.PotionRate = float64(potion) / n
	if parsed > 0 {
		m.AvgParse = parse / float64(parsed)
	}
	m.DPSVariation = variation(dpsValues)
	return m
}

// RaidWeekStart returns the start of the raid week containing t.
// Resets: US Tuesday 15:00 UTC, EU Wednesday 04:00 UTC, KR/TW
// Wednesday 22:00 UTC.
func RaidWeekStart(t time.Time, region string) time.Time {
	var weekday time.Weekday
	var hour int
	switch region {
	case "us":
		weekday, hour = time.Tuesday, 15
	case "kr", "tw":
		weekday, hour = time.Wednesday, 22
	default: // eu
		weekday, hour = time.Wednesday, 4
	}

	t = t.UTC()
	reset := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
	daysBack := (int(t.Weekday()) - int(weekday) + 7) % 7
	reset = reset.AddDate(0, 0, -daysBack)
	if reset.After(t) {
		reset = reset.AddDate(0, 0, -7)
	}
	return reset
}

// percentileAmong places own within others. An empty cohort means the
// character tops it by definition.
func percentileAmong(others []float64, own float64) float64 {
	if len(others) == 0 {
		return 100
	}
	below := 0
	for _, v := range others {
		if v < own {
			below++
		}
	}
	return 100 * float64(below) / float64(len(others))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// variation is the coefficient of variation: stddev over mean.
func variation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq/float64(len(values))) / mean
}
