package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trottiparts/trottiparts-api/internal/api"
	"github.com/trottiparts/trottiparts-api/internal/cache"
	"github.com/trottiparts/trottiparts-api/internal/config"
	"github.com/trottiparts/trottiparts-api/internal/db"
	"github.com/trottiparts/trottiparts-api/internal/logger"
	"github.com/trottiparts/trottiparts-api/internal/mailer"
	"github.com/trottiparts/trottiparts-api/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	queryCache, err := cache.NewQueryCache(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}

	images, err := storage.NewImageStore(conf.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage -> %w", err)
	}

	orderMailer := mailer.NewOrderMailer(conf.Mailer)

	s := api.NewServer(conf, postgresDB, queryCache, images, orderMailer)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
