package repository

import (
	"context"
	"database/sql"
	"time"

	"stillnoob/internal/db"
	"stillnoob/internal/domain"

	"github.com/rs/zerolog"
)

type CharacterRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCharacterRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CharacterRepository {
	return &CharacterRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *CharacterRepository) Get(ctx context.Context, id string) (*domain.Character, error) {
	row, err := r.queries.GetCharacterByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := toDomainCharacter(row)
	return &c, nil
}

func (r *CharacterRepository) GetByNameRealmRegion(ctx context.Context, name, realm, region string) (*domain.Character, error) {
	row, err := r.queries.GetCharacterByNameRealmRegion(ctx, db.GetCharacterByNameRealmRegionParams{
		Name:   name,
		Realm:  realm,
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	c := toDomainCharacter(row)
	return &c, nil
}

func (r *CharacterRepository) List(ctx context.Context) ([]domain.Character, error) {
	rows, err := r.queries.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	characters := make([]domain.Character, len(rows))
	for i, row := range rows {
		characters[i] = toDomainCharacter(row)
	}
	return characters, nil
}

func (r *CharacterRepository) ListDueForScan(ctx context.Context, cutoff time.Time) ([]domain.Character, error) {
	rows, err := r.queries.ListCharactersDueForScan(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	characters := make([]domain.Character, len(rows))
	for i, row := range rows {
		characters[i] = toDomainCharacter(row)
	}
	return characters, nil
}

func (r *CharacterRepository) Upsert(ctx context.Context, c *domain.Character) error {
	return r.queries.UpsertCharacter(ctx, db.UpsertCharacterParams{
		ID:             c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		Realm:          c.Realm,
		Region:         c.Region,
		Class:          c.Class,
		ActiveSpec:     c.ActiveSpec,
		Role:           c.Role,
		ItemLevel:      c.ItemLevel,
		RioScore:       c.RioScore,
		ThumbnailUrl:   c.ThumbnailURL,
		IsPartialFetch: c.IsPartialFetch,
		LastScanAt:     c.LastScanAt,
		LastFetchAt:    c.LastFetchAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	})
}

func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteCharacter(ctx, id)
}

func (r *CharacterRepository) ShouldRefresh(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	row, err := r.queries.GetCharacterLastFetchAt(ctx, id)
	if err == sql.ErrNoRows {
		r.logger.Debug().Str("character_id", id).Msg("character not found, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("character_id", id).Msg("failed to get character")
		return false, err
	}
	if row.IsPartialFetch {
		r.logger.Debug().Str("character_id", id).Msg("character is partial fetch, should refresh")
		return true, nil
	}

	timeSince := time.Since(row.LastFetchAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("character_id", id).
		Time("last_fetch_at", row.LastFetchAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if character should refresh")

	return shouldRefresh, nil
}

func (r *CharacterRepository) SetLastScanAt(ctx context.Context, id string, scannedAt time.Time) error {
	return r.queries.UpdateCharacterLastScanAt(ctx, db.UpdateCharacterLastScanAtParams{
		LastScanAt: scannedAt,
		UpdatedAt:  time.Now(),
		ID:         id,
	})
}

func (r *CharacterRepository) SetLastFetchAt(ctx context.Context, id string, fetchedAt time.Time) error {
	return r.queries.UpdateCharacterLastFetchAt(ctx, db.UpdateCharacterLastFetchAtParams{
		LastFetchAt: fetchedAt,
		UpdatedAt:   time.Now(),
		ID:          id,
	})
}

func toDomainCharacter(row db.Character) domain.Character {
	return domain.Character{
		ID:             row.ID,
		UserID:         row.UserID,
		Name:           row.Name,
		Realm:          row.Realm,
		Region:         row.Region,
		Class:          row.Class,
		ActiveSpec:     row.ActiveSpec,
		Role:           row.Role,
		ItemLevel:      row.ItemLevel,
		RioScore:       row.RioScore,
		ThumbnailURL:   row.ThumbnailUrl,
		IsPartialFetch: row.IsPartialFetch,
		LastScanAt:     row.LastScanAt,
		LastFetchAt:    row.LastFetchAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
