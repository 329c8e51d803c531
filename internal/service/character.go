package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

type CharacterService struct {
	blizzard     *api.BlizzardClient
	raiderio     *api.RaiderIOClient
	charRepo     *repository.CharacterRepository
	snapshotRepo *repository.SnapshotRepository
	logger       zerolog.Logger
}

func NewCharacterService(
	blizzard *api.BlizzardClient,
	raiderio *api.RaiderIOClient,
	charRepo *repository.CharacterRepository,
	snapshotRepo *repository.SnapshotRepository,
	logger zerolog.Logger,
) *CharacterService {
	return &CharacterService{
		blizzard:     blizzard,
		raiderio:     raiderio,
		charRepo:     charRepo,
		snapshotRepo: snapshotRepo,
		logger:       logger,
	}
}

// Track registers a character and hydrates its profile from Blizzard
// and Raider.io. Tracking an already-tracked character refreshes it.
func (s *CharacterService) Track(ctx context.Context, name, realm, region, userID string) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	realm = realmSlug(realm)
	region = strings.ToLower(region)

	s.logger.Info().Str("name", name).Str("realm", realm).Str("region", region).Msg("tracking character")

	character, err := s.charRepo.GetByNameRealmRegion(ctx, name, realm, region)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if character == nil {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		character = &domain.Character{
			ID:             id,
			Name:           name,
			Realm:          realm,
			Region:         region,
			IsPartialFetch: true,
			CreatedAt:      time.Now(),
		}
	}
	if userID != "" {
		character.UserID = userID
	}

	if err := s.refreshProfile(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// Get returns the stored character, refreshing the profile when the
// TTL has lapsed or a refresh is forced.
func (s *CharacterService) Get(ctx context.Context, id string, refresh bool) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	character, err := s.charRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shouldRefresh, err := s.charRepo.ShouldRefresh(ctx, id, constants.ProfileRefreshTTL)
	if err != nil {
		return nil, err
	}
	if refresh {
		s.logger.Debug().Str("character_id", id).Msg("manual refresh requested")
		shouldRefresh = true
	}
	if !shouldRefresh {
		s.logger.Info().Str("character_id", id).Msg("returning cached character")
		return character, nil
	}

	if err := s.refreshProfile(ctx, character); err != nil {
		// stale data beats an error on the read path
		s.logger.Warn().Err(err).Str("character_id", id).Msg("profile refresh failed, serving cached")
	}
	return character, nil
}

func (s *CharacterService) List(ctx context.Context) ([]domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.charRepo.List(ctx)
}

func (s *CharacterService) Untrack(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.charRepo.Delete(ctx, id)
}

func (s *CharacterService) Snapshots(ctx context.Context, id string) ([]domain.MplusSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.snapshotRepo.ListByCharacter(ctx, id, constants.SnapshotListLimit)
}

// PushTargets suggests next keystones from the live Raider.io best
// runs, falling back to the latest stored snapshot when the API is
// down.
func (s *CharacterService) PushTargets(ctx context.Context, id string) ([]analysis.PushTarget, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	character, err := s.charRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	profile, err := s.raiderio.GetCharacterProfile(apiCtx, character.Region, character.Realm, character.Name)
	apiCancel()
	if err == nil {
		return analysis.PushTargets(profile.MythicPlusBest), nil
	}

	s.logger.Warn().Err(err).Str("character_id", id).Msg("raider.io unavailable, using latest snapshot")
	snapshot, snapErr := s.snapshotRepo.Latest(ctx, id)
	if snapErr != nil || snapshot == nil {
		return nil, fmt.Errorf("failed to fetch raider.io profile: %w", err)
	}

	var best []api.RioRun
	if err := json.Unmarshal([]byte(snapshot.BestRuns), &best); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot runs: %w", err)
	}
	return analysis.PushTargets(best), nil
}

// refreshProfile merges the Blizzard character summary and the
// Raider.io profile into the stored character and captures an M+
// snapshot when the rating moved.
func (s *CharacterService) refreshProfile(ctx context.Context, character *domain.Character) error {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var summary *api.BlizzCharacterSummary
	var media *api.BlizzCharacterMedia
	var profile *api.RioProfileResponse

	g.Go(func() error {
		var err error
		summary, err = s.blizzard.GetCharacterSummary(gCtx, character.Region, character.Realm, character.Name)
		return err
	})
	g.Go(func() error {
		var err error
		media, err = s.blizzard.GetCharacterMedia(gCtx, character.Region, character.Realm, character.Name)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.raiderio.GetCharacterProfile(gCtx, character.Region, character.Realm, character.Name)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("name", character.Name).Msg("failed to fetch character profile")
		return fmt.Errorf("failed to fetch character profile: %w", err)
	}

	previousScore := character.RioScore

	character.Name = summary.Name
	character.Class = summary.CharacterClass.Name
	character.ActiveSpec = summary.ActiveSpec.Name
	character.ItemLevel = summary.EquippedItemLevel
	character.Role = roleFromRio(profile.ActiveSpecRole)
	character.RioScore = profile.CurrentScore()
	character.ThumbnailURL = media.Avatar()
	character.IsPartialFetch = false
	character.LastFetchAt = time.Now()
	character.UpdatedAt = time.Now()

	if err := s.charRepo.Upsert(ctx, character); err != nil {
		s.logger.Error().Err(err).Str("character_id", character.ID).Msg("failed to upsert character")
		return fmt.Errorf("failed to upsert character: %w", err)
	}

	if err := s.maybeSnapshot(ctx, character, profile, previousScore); err != nil {
		s.logger.Warn().Err(err).Str("character_id", character.ID).Msg("failed to capture snapshot")
	}
	return nil
}

func (s *CharacterService) maybeSnapshot(ctx context.Context, character *domain.Character, profile *api.RioProfileResponse, previousScore float64) error {
	latest, err := s.snapshotRepo.Latest(ctx, character.ID)
	if err != nil {
		return err
	}
	if latest != nil && latest.Score == character.RioScore && previousScore == character.RioScore {
		return nil
	}

	runs, err := json.Marshal(profile.MythicPlusBest)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("character_id", character.ID).
		Float64("score", character.RioScore).
		Msg("capturing mythic+ snapshot")

	return s.snapshotRepo.Append(ctx, &domain.MplusSnapshot{
		CharacterID: character.ID,
		Score:       character.RioScore,
		BestRuns:    string(runs),
		CapturedAt:  time.Now(),
	})
}

func roleFromRio(role string) string {
	switch strings.ToUpper(role) {
	case "HEALING":
		return "healer"
	case "TANK":
		return "tank"
	default:
		return "dps"
	}
}

// realmSlug normalizes "Twisting Nether" style names into API slugs.
func realmSlug(realm string) string {
	slug := strings.ToLower(strings.TrimSpace(realm))
	slug = strings.ReplaceAll(slug, "' ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
