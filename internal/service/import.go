package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stillnoob/internal/analysis"
	"stillnoob/internal/api"
	"stillnoob/internal/constants"
	"stillnoob/internal/domain"
	"stillnoob/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ImportService struct {
	wcl        *api.WCLClient
	reportRepo *repository.ReportRepository
	charRepo   *repository.CharacterRepository
	logger     zerolog.Logger
}

func NewImportService(wcl *api.WCLClient, reportRepo *repository.ReportRepository, charRepo *repository.CharacterRepository, logger zerolog.Logger) *ImportService {
	return &ImportService{wcl: wcl, reportRepo: reportRepo, charRepo: charRepo, logger: logger}
}

type ImportResult struct {
	Imported     bool           `json:"imported"`
	Report       *domain.Report `json:"report"`
	Fights       int            `json:"fights"`
	Performances int            `json:"performances"`
}

// Import pulls a report from Warcraft Logs and persists it with all
// its fights and per-player summaries. The report code is the
// idempotency key: when the code is already stored (or another
// importer wins the insert race) nothing is written and Imported is
// false.
func (s *ImportService) Import(ctx context.Context, code string) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ImportTimeout)
	defer cancel()

	exists, err := s.reportRepo.Exists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check report %s: %w", code, err)
	}
	if exists {
		s.logger.Info().Str("code", code).Msg("report already imported")
		report, err := s.reportRepo.Get(ctx, code)
		if err != nil {
			return nil, err
		}
		return &ImportResult{Imported: false, Report: report}, nil
	}

	s.logger.Info().Str("code", code).Msg("importing report")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	resp, err := s.wcl.GetReport(apiCtx, code)
	apiCancel()
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to fetch report")
		return nil, fmt.Errorf("failed to fetch report %s: %w", code, err)
	}

	raw := resp.ReportData.Report
	reportStart := time.UnixMilli(int64(raw.StartTime))
	report := &domain.Report{
		Code:      code,
		Title:     raw.Title,
		ZoneID:    raw.Zone.ID,
		ZoneName:  raw.Zone.Name,
		Owner:     raw.Owner.Name,
		StartedAt: reportStart,
		EndedAt:   time.UnixMilli(int64(raw.EndTime)),
	}

	rankings := s.fetchRankings(ctx, code)
	tracked, err := s.trackedByName(ctx)
	if err != nil {
		return nil, err
	}

	fights, performances, err := s.buildFights(ctx, code, reportStart, raw.Fights, rankings, tracked)
	if err != nil {
		return nil, err
	}

	imported, err := s.reportRepo.InsertWithFights(ctx, report, fights, performances)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to persist report")
		return nil, fmt.Errorf("failed to persist report %s: %w", code, err)
	}

	s.logger.Info().
		Str("code", code).
		Bool("imported", imported).
		Int("fights", len(fights)).
		Int("performances", len(performances)).
		Msg("report import finished")

	return &ImportResult{
		Imported:     imported,
		Report:       report,
		Fights:       len(fights),
		Performances: len(performances),
	}, nil
}

// fetchRankings is best effort; percentiles just come back as zero
// when the report has none yet.
func (s *ImportService) fetchRankings(ctx context.Context, code string) map[int]*api.FightRanking {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	byFight := make(map[int]*api.FightRanking)
	resp, err := s.wcl.GetReportRankings(apiCtx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("failed to fetch rankings")
		return byFight
	}
	for i := range resp.Data {
		byFight[resp.Data[i].FightID] = &resp.Data[i]
	}
	return byFight
}

func (s *ImportService) trackedByName(ctx context.Context) (map[string]domain.Character, error) {
	characters, err := s.charRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked characters: %w", err)
	}
	tracked := make(map[string]domain.Character, len(characters))
	for _, c := range characters {
		tracked[strings.ToLower(c.Name)] = c
	}
	return tracked, nil
}

func (s *ImportService) buildFights(
	ctx context.Context,
	code string,
	reportStart time.Time,
	rawFights []api.ReportFight,
	rankings map[int]*api.FightRanking,
	tracked map[string]domain.Character,
) ([]domain.Fight, []domain.FightPerformance, error) {
	var mu sync.Mutex
	var fights []domain.Fight
	var performances []domain.FightPerformance

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.FightTableConcurrency)

	for _, rawFight := range rawFights {
		if rawFight.EncounterID == 0 {
			continue // trash between pulls
		}

		g.Go(func() error {
			tableCtx, cancel := context.WithTimeout(gCtx, constants.ExternalAPITimeout)
			defer cancel()

			tables, err := s.wcl.GetFightTables(tableCtx, code, rawFight.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch tables for fight %d: %w", rawFight.ID, err)
			}

			summaries := analysis.NormalizeFight(tables, rankings[rawFight.ID])
			if len(summaries) == 0 {
				return nil
			}

			fightID, err := gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}

			fight := domain.Fight{
				ID:          fightID,
				ReportCode:  code,
				FightID:     rawFight.ID,
				EncounterID: rawFight.EncounterID,
				BossName:    rawFight.Name,
				Difficulty:  rawFight.Difficulty,
				Kill:        rawFight.Kill,
				StartedAt:   reportStart.Add(time.Duration(rawFight.StartTime) * time.Millisecond),
				Duration:    time.Duration(rawFight.EndTime-rawFight.StartTime) * time.Millisecond,
			}

			fightPerfs := make([]domain.FightPerformance, 0, len(summaries))
			for _, p := range summaries {
				perf := domain.FightPerformance{
					FightID:         fightID,
					CharacterName:   p.Name,
					Role:            p.Role,
					DPS:             p.DPS,
					HPS:             p.HPS,
					DamageTaken:     p.DamageTaken,
					Deaths:          p.Deaths,
					Interrupts:      p.Interrupts,
					Dispels:         p.Dispels,
					ParsePercentile: p.ParsePercentile,
					FlaskUp:         p.FlaskUp,
					FoodUp:          p.FoodUp,
					PotionUsed:      p.PotionUsed,
				}
				if c, ok := tracked[strings.ToLower(p.Name)]; ok {
					perf.CharacterID = c.ID
				}
				fightPerfs = append(fightPerfs, perf)
			}

			mu.Lock()
			fights = append(fights, fight)
			performances = append(performances, fightPerfs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to fetch fight tables")
		return nil, nil, err
	}
	return fights, performances, nil
}
