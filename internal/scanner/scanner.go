package scanner

import (
	"context"
	"time"

	"stillnoob/internal/api"
	"stillnoob/internal/config"
	"stillnoob/internal/constants"
	"stillnoob/internal/domain"
	"stillnoob/internal/repository"
	"stillnoob/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

// Scanner periodically walks the tracked characters and imports any
// recent Warcraft Logs reports it has not seen. A token bucket caps
// how fast it touches the external API; races with the manual import
// endpoint are settled by the report-code uniqueness constraint.
type Scanner struct {
	wcl       *api.WCLClient
	charRepo  *repository.CharacterRepository
	importSvc *service.ImportService
	limiter   *rate.Limiter
	interval  time.Duration
	logger    zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func New(
	cfg *config.Config,
	wcl *api.WCLClient,
	charRepo *repository.CharacterRepository,
	importSvc *service.ImportService,
	logger zerolog.Logger,
) *Scanner {
	return &Scanner{
		wcl:       wcl,
		charRepo:  charRepo,
		importSvc: importSvc,
		limiter:   rate.NewLimiter(rate.Limit(float64(cfg.ScanRatePerMin)/60), 5),
		interval:  cfg.ScanInterval,
		logger:    logger,
	}
}

func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("scanner started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scanner stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scanner) tick(ctx context.Context) {
	cutoff := time.Now().Add(-constants.ScanCharacterTTL)
	characters, err := s.charRepo.ListDueForScan(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list characters due for scan")
		return
	}
	if len(characters) == 0 {
		s.logger.Debug().Msg("no characters due for scan")
		return
	}

	if info, err := s.wcl.GetRateLimit(ctx); err == nil {
		s.logger.Debug().
			Float64("points_spent", info.PointsSpentThisHour).
			Int("limit_per_hour", info.LimitPerHour).
			Msg("warcraft logs rate budget")
	}

	s.logger.Info().Int("characters", len(characters)).Msg("scan tick started")
	for _, character := range characters {
		if ctx.Err() != nil {
			return
		}
		s.scanCharacter(ctx, character)
	}
}

func (s *Scanner) scanCharacter(ctx context.Context, character domain.Character) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	resp, err := s.wcl.GetRecentReports(apiCtx, character.Name, character.Realm, character.Region, constants.ScanReportLimit)
	cancel()
	if err != nil {
		// leave last_scan_at alone so the next tick retries
		s.logger.Warn().Err(err).
			Str("character_id", character.ID).
			Str("name", character.Name).
			Msg("failed to list recent reports")
		return
	}

	for _, report := range resp.CharacterData.Character.RecentReports.Data {
		if ctx.Err() != nil {
			return
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		result, err := s.importSvc.Import(ctx, report.Code)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", report.Code).Msg("scanner import failed")
			continue
		}
		if result.Imported {
			s.logger.Info().
				Str("code", report.Code).
				Str("character_id", character.ID).
				Int("fights", result.Fights).
				Msg("scanner imported report")
		}
	}

	if err := s.charRepo.SetLastScanAt(ctx, character.ID, time.Now()); err != nil {
		s.logger.Warn().Err(err).Str("character_id", character.ID).Msg("failed to set last scan at")
	}
}

// Register hooks the scanner into the fx lifecycle.
func Register(lc fx.Lifecycle, s *Scanner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runCtx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			s.done = make(chan struct{})
			go s.run(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.cancel != nil {
				s.cancel()
			}
			select {
			case <-s.done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
