package domain

import (
	"time"
)

type User struct {
	ID        string    `json:"id"` // nanoid
	Email     string    `json:"email"`
	Tier      string    `json:"tier"` // "free", "premium"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Character struct {
	ID             string    `json:"id"`      // nanoid
	UserID         string    `json:"user_id"` // empty when tracked anonymously
	Name           string    `json:"name"`
	Realm          string    `json:"realm"`
	Region         string    `json:"region"` // "us", "eu", "kr", "tw"
	Class          string    `json:"class"`
	ActiveSpec     string    `json:"active_spec"`
	Role           string    `json:"role"` // "dps", "healer", "tank"
	ItemLevel      float64   `json:"item_level"`
	RioScore       float64   `json:"rio_score"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	IsPartialFetch bool      `json:"is_partial_fetch"`
	LastScanAt     time.Time `json:"last_scan_at"`
	LastFetchAt    time.Time `json:"last_fetch_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Report struct {
	Code      string    `json:"code"` // Warcraft Logs report code, globally unique
	Title     string    `json:"title"`
	ZoneID    int       `json:"zone_id"`
	ZoneName  string    `json:"zone_name"`
	Owner     string    `json:"owner"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Fight struct {
	ID          string        `json:"id"` // nanoid
	ReportCode  string        `json:"report_code"`
	FightID     int           `json:"fight_id"` // id within the report
	EncounterID int           `json:"encounter_id"`
	BossName    string        `json:"boss_name"`
	Difficulty  int           `json:"difficulty"`
	Kill        bool          `json:"kill"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

type FightPerformance struct {
	ID              string    `json:"id"` // nanoid
	FightID         string    `json:"fight_id"`
	CharacterID     string    `json:"character_id"`
	CharacterName   string    `json:"character_name"`
	Role            string    `json:"role"`
	DPS             float64   `json:"dps"`
	HPS             float64   `json:"hps"`
	DamageTaken     float64   `json:"damage_taken"`
	Deaths          int       `json:"deaths"`
	Interrupts      int       `json:"interrupts"`
	Dispels         int       `json:"dispels"`
	ParsePercentile float64   `json:"parse_percentile"`
	FlaskUp         bool      `json:"flask_up"`
	FoodUp          bool      `json:"food_up"`
	PotionUsed      bool      `json:"potion_used"`
	CreatedAt       time.Time `json:"created_at"`
}

// FightRecord pairs a fight with one performance row from it.
// Analysis queries return cohort records: every participant's row for
// every fight the subject character appears in.
type FightRecord struct {
	Fight       Fight            `json:"fight"`
	Performance FightPerformance `json:"performance"`
}

type MplusSnapshot struct {
	ID          string    `json:"id"` // nanoid
	CharacterID string    `json:"character_id"`
	Score       float64   `json:"score"`
	BestRuns    string    `json:"best_runs"` // raw JSON from Raider.io, kept for the trend UI
	CapturedAt  time.Time `json:"captured_at"`
	CreatedAt   time.Time `json:"created_at"`
}
