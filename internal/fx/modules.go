package fx

import (
	"database/sql"

	"stillnoob/internal/api"
	"stillnoob/internal/config"
	"stillnoob/internal/database"
	"stillnoob/internal/db"
	"stillnoob/internal/logger"
	"stillnoob/internal/repository"
	"stillnoob/internal/scanner"
	"stillnoob/internal/server"
	"stillnoob/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewCharacterRepository),
	fx.Provide(repository.NewReportRepository),
	fx.Provide(repository.NewSnapshotRepository),
	// api clients
	fx.Provide(api.NewWCLClient),
	fx.Provide(api.NewRaiderIOClient),
	fx.Provide(api.NewBlizzardClient),
	// svc
	fx.Provide(service.NewCharacterService),
	fx.Provide(service.NewImportService),
	fx.Provide(service.NewAnalysisService),
	// background scanner
	fx.Provide(scanner.New),
	// server
	fx.Provide(server.New),
)
