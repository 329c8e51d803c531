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

type SnapshotRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSnapshotRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Append records a new snapshot. Snapshots are append-only; there is
// no update path.
func (r *SnapshotRepository) Append(ctx context.Context, s *domain.MplusSnapshot) error {
	id := s.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	return r.queries.InsertSnapshot(ctx, db.InsertSnapshotParams{
		ID:          id,
		CharacterID: s.CharacterID,
		Score:       s.Score,
		BestRuns:    s.BestRuns,
		CapturedAt:  s.CapturedAt,
		CreatedAt:   time.Now(),
	})
}

func (r *SnapshotRepository) ListByCharacter(ctx context.Context, characterID string, limit int) ([]domain.MplusSnapshot, error) {
	rows, err := r.queries.ListSnapshotsByCharacter(ctx, db.ListSnapshotsByCharacterParams{
		CharacterID: characterID,
		Limit:       int64(limit),
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.MplusSnapshot, len(rows))
	for i, row := range rows {
		snapshots[i] = domain.MplusSnapshot{
			ID:          row.ID,
			CharacterID: row.CharacterID,
			Score:       row.Score,
			BestRuns:    row.BestRuns,
			CapturedAt:  row.CapturedAt,
			CreatedAt:   row.CreatedAt,
		}
	}
	return snapshots, nil
}

// Latest returns nil when no snapshot exists yet.
func (r *SnapshotRepository) Latest(ctx context.Context, characterID string) (*domain.MplusSnapshot, error) {
	row, err := r.queries.GetLatestSnapshot(ctx, characterID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.MplusSnapshot{
		ID:          row.ID,
		CharacterID: row.CharacterID,
		Score:       row.Score,
		BestRuns:    row.BestRuns,
		CapturedAt:  row.CapturedAt,
		CreatedAt:   row.CreatedAt,
	}, nil
}
