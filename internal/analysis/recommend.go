package analysis

import "sort"

type Tip struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Priority float64 `json:"priority"`
}

// tipRule fires when metric crosses threshold in the given direction.
// Priority is the weighted distance past the threshold.
type tipRule struct {
	id        string
	category  string
	message   string
	metric    func(Metrics) float64
	threshold float64
	above     bool // true: fire when metric > threshold
	weight    float64

	// a zero metric means "never measured", not "terrible"
	skipZero bool
}

var tipRules = []tipRule{
	{
		id:        "deaths-high",
		category:  "survival",
		message:   "You die more than once every three pulls. Watch the death recaps and plan your defensives before the mechanic hits, not after.",
		metric:    func(m Metrics) float64 { return m.DeathsPerFight },
		threshold: 0.3,
		above:     true,
		weight:    30,
	},
	{
		id:        "flask-missing",
		category:  "preparation",
		message:   "Flask uptime is below 80%. Keep a flask rolling on every pull, it is the cheapest DPS you will ever buy.",
		metric:    func(m Metrics) float64 { return m.FlaskRate },
		threshold: 0.8,
		above:     false,
		weight:    20,
	},
	{
		id:        "food-missing",
		category:  "preparation",
		message:   "Well Fed is missing on most pulls. Eat before the countdown finishes.",
		metric:    func(m Metrics) float64 { return m.FoodRate },
		threshold: 0.7,
		above:     false,
		weight:    12,
	},
	{
		id:        "potion-unused",
		category:  "preparation",
		message:   "Combat potions are going unused. Pot on pull with your cooldowns for a free burst window.",
		metric:    func(m Metrics) float64 { return m.PotionRate },
		threshold: 0.5,
		above:     false,
		weight:    10,
	},
	{
		id:        "parse-low",
		category:  "performance",
		message:   "Your average parse sits in the bottom quartile for your spec. Review your opener and cooldown usage against a top log of the same fight.",
		metric:    func(m Metrics) float64 { return m.AvgParse },
		threshold: 25,
		above:     false,
		weight:    1.5,
		skipZero:  true, // zero parse means the report had no rankings
	},
	{
		id:        "interrupts-low",
		category:  "utility",
		message:   "Less than one interrupt every two fights. Claim a kick target in the group plan and bind interrupt somewhere you can actually press.",
		metric:    func(m Metrics) float64 { return m.InterruptsPerFight },
		threshold: 0.5,
		above:     false,
		weight:    15,
	},
	{
		id:        "inconsistent",
		category:  "consistency",
		message:   "Your output swings hard between pulls. Aim for a repeatable rotation before chasing a record parse.",
		metric:    func(m Metrics) float64 { return m.DPSVariation },
		threshold: 0.25,
		above:     true,
		weight:    80,
	},
}

// Recommend evaluates the rule table and returns tips ordered by
// priority. No fights means no tips.
func Recommend(agg *AggregateResult) []Tip {
	if agg.Totals.Fights == 0 {
		return nil
	}

	var tips []Tip
	for _, rule := range tipRules {
		value := rule.metric(agg.Metrics)
		if rule.skipZero && value == 0 {
			continue
		}
		var gap float64
		if rule.above {
			gap = value - rule.threshold
		} else {
			gap = rule.threshold - value
		}
		if gap <= 0 {
			continue
		}
		tips = append(tips, Tip{
			ID:       rule.id,
			Category: rule.category,
			Message:  rule.message,
			Priority: gap * rule.weight,
		})
	}

	sort.Slice(tips, func(i, j int) bool { return tips[i].Priority > tips[j].Priority })
	return tips
}
