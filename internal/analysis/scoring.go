package analysis

// Component weights of the StillNoob Score. They sum to 1.
const (
	weightPerformance = 0.35
	weightSurvival    = 0.20
	weightPreparation = 0.15
	weightUtility     = 0.15
	weightConsistency = 0.15
)

// Survival and utility coefficients: deaths cost 125 score points per
// death per fight, an interrupt earns 30, a dispel 20, and DPS
// variation burns 200 per unit of coefficient of variation.
const (
	deathPenaltyPerFight = 125.0
	interruptCredit      = 30.0
	dispelCredit         = 20.0
	variationPenalty     = 200.0
)

// Preparation sub-weights: flask, food, potion.
const (
	prepFlaskWeight  = 0.4
	prepFoodWeight   = 0.3
	prepPotionWeight = 0.3
)

type tierBracket struct {
	Floor float64
	Label string
}

// Sorted descending; the last bracket catches everything.
var tierBrackets = []tierBracket{
	{95, "Elite"},
	{85, "Hero"},
	{70, "Veteran"},
	{55, "Adventurer"},
	{40, "Apprentice"},
	{0, "Still Noob"},
}

type ScoreCard struct {
	Score      float64         `json:"score"`
	Tier       string          `json:"tier"`
	Components ScoreComponents `json:"components"`
}

type ScoreComponents struct {
	Performance float64 `json:"performance"`
	Survival    float64 `json:"survival"`
	Preparation float64 `json:"preparation"`
	Utility     float64 `json:"utility"`
	Consistency float64 `json:"consistency"`
}

// Score applies the fixed weighted sum to the aggregate metrics. An
// aggregate with no fights scores 0 ("Still Noob").
func Score(agg *AggregateResult) ScoreCard {
	if agg.Totals.Fights == 0 {
		return ScoreCard{Score: 0, Tier: TierFor(0)}
	}

	c := ScoreComponents{
		Performance: performanceScore(agg),
		Survival:    clampScore(100 - agg.Metrics.DeathsPerFight*deathPenaltyPerFight),
		Preparation: clampScore(100 * (prepFlaskWeight*agg.Metrics.FlaskRate +
			prepFoodWeight*agg.Metrics.FoodRate +
			prepPotionWeight*agg.Metrics.PotionRate)),
		Utility: clampScore(agg.Metrics.InterruptsPerFight*interruptCredit +
			agg.Metrics.DispelsPerFight*dispelCredit),
		Consistency: clampScore(100 - agg.Metrics.DPSVariation*variationPenalty),
	}

	score := weightPerformance*c.Performance +
		weightSurvival*c.Survival +
		weightPreparation*c.Preparation +
		weightUtility*c.Utility +
		weightConsistency*c.Consistency

	return ScoreCard{
		Score:      score,
		Tier:       TierFor(score),
		Components: c,
	}
}

// performanceScore prefers the public parse percentile and falls back
// to the in-group DPS percentile when nothing was ranked.
func performanceScore(agg *AggregateResult) float64 {
	if agg.Metrics.AvgParse > 0 {
		return clampScore(agg.Metrics.AvgParse)
	}
	return clampScore(agg.Comparison.DPSPercentile)
}

// TierFor looks the score up in the bracket table. Values below the
// lowest floor land in the lowest tier.
func TierFor(score float64) string {
	for _, b := range tierBrackets {
		if score >= b.Floor {
			return b.Label
		}
	}
	return tierBrackets[len(tierBrackets)-1].Label
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
