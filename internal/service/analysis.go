package service

import (
	"context"
	"fmt"

	"stillnoob/internal/analysis"
	"stillnoob/internal/constants"
	"stillnoob/internal/domain"
	"stillnoob/internal/repository"

	"github.com/rs/zerolog"
)

type AnalysisService struct {
	charRepo   *repository.CharacterRepository
	reportRepo *repository.ReportRepository
	logger     zerolog.Logger
}

func NewAnalysisService(charRepo *repository.CharacterRepository, reportRepo *repository.ReportRepository, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{charRepo: charRepo, reportRepo: reportRepo, logger: logger}
}

// AnalysisPayload is the full derived-data response for one character.
type AnalysisPayload struct {
	Character *domain.Character        `json:"character"`
	Score     analysis.ScoreCard       `json:"score"`
	Totals    analysis.Totals          `json:"totals"`
	Bosses    []analysis.BossBreakdown `json:"bosses"`
	Weekly    []analysis.WeeklyTrend   `json:"weekly"`
	Compared  analysis.Comparison      `json:"comparison"`
	Tips      []analysis.Tip           `json:"tips"`
}

// Analyze runs the full pipeline over everything stored for the
// character: aggregate, score, recommend.
func (s *AnalysisService) Analyze(ctx context.Context, characterID string) (*AnalysisPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	character, err := s.charRepo.Get(ctx, characterID)
	if err != nil {
		s.logger.Error().Err(err).Str("character_id", characterID).Msg("character not found")
		return nil, fmt.Errorf("character not found: %w", err)
	}

	records, err := s.reportRepo.GetAnalysisRows(ctx, characterID)
	if err != nil {
		s.logger.Error().Err(err).Str("character_id", characterID).Msg("failed to load fight records")
		return nil, fmt.Errorf("failed to load fight records: %w", err)
	}

	agg := analysis.Aggregate(characterID, character.Region, records)
	card := analysis.Score(agg)
	tips := analysis.Recommend(agg)

	s.logger.Info().
		Str("character_id", characterID).
		Int("fights", agg.Totals.Fights).
		Float64("score", card.Score).
		Str("tier", card.Tier).
		Msg("analysis computed")

	return &AnalysisPayload{
		Character: character,
		Score:     card,
		Totals:    agg.Totals,
		Bosses:    agg.Bosses,
		Weekly:    agg.Weekly,
		Compared:  agg.Comparison,
		Tips:      tips,
	}, nil
}
