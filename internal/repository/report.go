package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stillnoob/internal/db"
	"stillnoob/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ReportRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewReportRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ReportRepository {
	return &ReportRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ReportRepository) Exists(ctx context.Context, code string) (bool, error) {
	count, err := r.queries.CountReportByCode(ctx, code)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReportRepository) Get(ctx context.Context, code string) (*domain.Report, error) {
	row, err := r.queries.GetReportByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &domain.Report{
		Code:      row.Code,
		Title:     row.Title,
		ZoneID:    int(row.ZoneID),
		ZoneName:  row.ZoneName,
		Owner:     row.Owner,
		StartedAt: row.StartedAt,
		EndedAt:   row.EndedAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// InsertWithFights writes the report and everything under it in one
// transaction. The report code's unique constraint makes the whole
// call a no-op when another importer got there first; inserted reports
// false in that case and nothing is written.
func (r *ReportRepository) InsertWithFights(ctx context.Context, report *domain.Report, fights []domain.Fight, performances []domain.FightPerformance) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	affected, err := qtx.InsertReport(ctx, db.InsertReportParams{
		Code:      report.Code,
		Title:     report.Title,
		ZoneID:    int64(report.ZoneID),
		ZoneName:  report.ZoneName,
		Owner:     report.Owner,
		StartedAt: report.StartedAt,
		EndedAt:   report.EndedAt,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert report %s: %w", report.Code, err)
	}
	if affected == 0 {
		r.logger.Debug().Str("code", report.Code).Msg("report already stored, skipping")
		return false, nil
	}

	for _, fight := range fights {
		err := qtx.InsertFight(ctx, db.InsertFightParams{
			ID:          fight.ID,
			ReportCode:  fight.ReportCode,
			FightID:     int64(fight.FightID),
			EncounterID: int64(fight.EncounterID),
			BossName:    fight.BossName,
			Difficulty:  int64(fight.Difficulty),
			Kill:        fight.Kill,
			StartedAt:   fight.StartedAt,
			DurationMs:  fight.Duration.Milliseconds(),
			CreatedAt:   time.Now(),
		})
		if err != nil {
			return false, fmt.Errorf("failed to insert fight %d of %s: %w", fight.FightID, fight.ReportCode, err)
		}
	}

	for _, p := range performances {
		id := p.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return false, fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		err := qtx.InsertFightPerformance(ctx, db.InsertFightPerformanceParams{
			ID:              id,
			FightID:         p.FightID,
			CharacterID:     p.CharacterID,
			CharacterName:   p.CharacterName,
			Role:            p.Role,
			Dps:             p.DPS,
			Hps:             p.HPS,
			DamageTaken:     p.DamageTaken,
			Deaths:          int64(p.Deaths),
			Interrupts:      int64(p.Interrupts),
			Dispels:         int64(p.Dispels),
			ParsePercentile: p.ParsePercentile,
			FlaskUp:         p.FlaskUp,
			FoodUp:          p.FoodUp,
			PotionUsed:      p.PotionUsed,
			CreatedAt:       time.Now(),
		})
		if err != nil {
			return false, fmt.Errorf("failed to insert performance for %s: %w", p.CharacterName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetAnalysisRows returns cohort fight records: every participant's
// performance in every fight the character appears in.
func (r *ReportRepository) GetAnalysisRows(ctx context.Context, characterID string) ([]domain.FightRecord, error) {
	rows, err := r.queries.GetAnalysisRows(ctx, characterID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.FightRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.FightRecord{
			Fight: domain.Fight{
				ID:          row.FightRowID,
				ReportCode:  row.ReportCode,
				EncounterID: int(row.EncounterID),
				BossName:    row.BossName,
				Difficulty:  int(row.Difficulty),
				Kill:        row.Kill,
				StartedAt:   row.FightStartedAt,
				Duration:    time.Duration(row.DurationMs) * time.Millisecond,
			},
			Performance: domain.FightPerformance{
				ID:              row.PerfID,
				FightID:         row.FightRowID,
				CharacterID:     row.CharacterID,
				CharacterName:   row.CharacterName,
				Role:            row.Role,
				DPS:             row.Dps,
				HPS:             row.Hps,
				DamageTaken:     row.DamageTaken,
				Deaths:          int(row.Deaths),
				Interrupts:      int(row.Interrupts),
				Dispels:         int(row.Dispels),
				ParsePercentile: row.ParsePercentile,
				FlaskUp:         row.FlaskUp,
				FoodUp:          row.FoodUp,
				PotionUsed:      row.PotionUsed,
			},
		}
	}
	return records, nil
}
