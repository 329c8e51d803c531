package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stillnoob/internal/api"
	"stillnoob/internal/config"
	"stillnoob/internal/database"
	"stillnoob/internal/db"
	"stillnoob/internal/domain"
	"stillnoob/internal/repository"
	"stillnoob/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server   *Server
	charRepo *repository.CharacterRepository
	reports  *repository.ReportRepository
	snaps    *repository.SnapshotRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		WCLClientID:     "test",
		WCLClientSecret: "test",
		DBPath:          filepath.Join(t.TempDir(), "test.db"),
		DefaultRegion:   "eu",
	}
	logger := zerolog.Nop()

	sqlDB, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	charRepo := repository.NewCharacterRepository(sqlDB, queries, logger)
	reportRepo := repository.NewReportRepository(sqlDB, queries, logger)
	snapshotRepo := repository.NewSnapshotRepository(sqlDB, queries, logger)

	wcl := api.NewWCLClient(cfg)
	characterSvc := service.NewCharacterService(api.NewBlizzardClient(cfg), api.NewRaiderIOClient(), charRepo, snapshotRepo, logger)
	importSvc := service.NewImportService(wcl, reportRepo, charRepo, logger)
	analysisSvc := service.NewAnalysisService(charRepo, reportRepo, logger)

	return &testEnv{
		server:   New(cfg, characterSvc, importSvc, analysisSvc, logger),
		charRepo: charRepo,
		reports:  reportRepo,
		snaps:    snapshotRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.server.Routes().ServeHTTP(rec, req)
	return rec
}

// seedCharacter stores a fully-fetched character so read paths serve
// from the database without touching upstream APIs.
func (e *testEnv) seedCharacter(t *testing.T, id string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, e.charRepo.Upsert(t.Context(), &domain.Character{
		ID:          id,
		Name:        "thrall",
		Realm:       "proudmoore",
		Region:      "us",
		Class:       "Shaman",
		ActiveSpec:  "Enhancement",
		Role:        "dps",
		ItemLevel:   628,
		RioScore:    2750,
		LastScanAt:  now,
		LastFetchAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTrackCharacterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing name", map[string]string{"realm": "proudmoore", "region": "us"}},
		{"missing realm", map[string]string{"name": "thrall", "region": "us"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/characters", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// An omitted region falls back to the configured default. The request
// then reaches the upstream fetch, which fails with the test
// credentials, so a 502 (not a 400) means validation accepted it.
func TestTrackCharacterDefaultRegion(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/characters", map[string]string{
		"name":  "thrall",
		"realm": "proudmoore",
	})
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTrackCharacterBadBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/characters", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	env.server.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCharacter(t *testing.T) {
	env := newTestEnv(t)
	env.seedCharacter(t, "char-1")

	rec := env.do(t, http.MethodGet, "/api/v1/characters/char-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Character
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "thrall", got.Name)
	require.Equal(t, "Shaman", got.Class)
}

func TestGetCharacterNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/characters/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCharacters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/characters/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	env.seedCharacter(t, "char-1")
	rec = env.do(t, http.MethodGet, "/api/v1/characters/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Character
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestUntrackCharacter(t *testing.T) {
	env := newTestEnv(t)
	env.seedCharacter(t, "char-1")

	rec := env.do(t, http.MethodDelete, "/api/v1/characters/char-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/characters/char-1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshots(t *testing.T) {
	env := newTestEnv(t)
	env.seedCharacter(t, "char-1")

	require.NoError(t, env.snaps.Append(t.Context(), &domain.MplusSnapshot{
		CharacterID: "char-1",
		Score:       2750,
		BestRuns:    `[]`,
		CapturedAt:  time.Now(),
	}))

	rec := env.do(t, http.MethodGet, "/api/v1/characters/char-1/snapshots", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshots []domain.MplusSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshots))
	require.Len(t, snapshots, 1)
	require.InDelta(t, 2750, snapshots[0].Score, 0.01)
}

func TestImportReportValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/reports/import", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/analysis/character/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysis(t *testing.T) {
	env := newTestEnv(t)
	env.seedCharacter(t, "char-1")

	started := time.Date(2026, 8, 12, 19, 0, 0, 0, time.UTC)
	report := &domain.Report{
		Code:      "ABC123xyz",
		Title:     "Weekly Clear",
		ZoneID:    38,
		ZoneName:  "Nerub-ar Palace",
		StartedAt: started,
		EndedAt:   started.Add(3 * time.Hour),
	}
	fights := []domain.Fight{{
		ID:          "f1",
		ReportCode:  "ABC123xyz",
		FightID:     1,
		EncounterID: 3009,
		BossName:    "Ulgrax",
		Kill:        true,
		StartedAt:   started,
		Duration:    4 * time.Minute,
	}}
	performances := []domain.FightPerformance{
		{
			FightID: "f1", CharacterID: "char-1", CharacterName: "Thrall", Role: "dps",
			DPS: 950_000, ParsePercentile: 60, Interrupts: 2,
			FlaskUp: true, FoodUp: true, PotionUsed: true,
		},
		{
			FightID: "f1", CharacterName: "Jaina", Role: "dps",
			DPS: 800_000, Deaths: 1,
		},
	}
	inserted, err := env.reports.InsertWithFights(t.Context(), report, fights, performances)
	require.NoError(t, err)
	require.True(t, inserted)

	rec := env.do(t, http.MethodGet, "/api/v1/analysis/character/char-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload service.AnalysisPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "char-1", payload.Character.ID)
	require.Equal(t, 1, payload.Totals.Fights)
	require.Equal(t, 1, payload.Totals.Kills)
	require.Len(t, payload.Bosses, 1)
	require.Equal(t, "Ulgrax", payload.Bosses[0].BossName)
	require.Greater(t, payload.Score.Score, 0.0)
	require.NotEmpty(t, payload.Score.Tier)
}
