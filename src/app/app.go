// Package app wires the registry together: configuration, logging, the
// persistent store, the repository, and the usecase layer. Presentation
// collaborators embed an App and call its usecase.
package app

import (
	"fmt"

	"memo-registry/src/config"
	"memo-registry/src/logger"
	"memo-registry/src/repository"
	"memo-registry/src/store"
	"memo-registry/src/usecase"
)

// App bundles the assembled registry core
type App struct {
	Config *config.Config
	Memos  usecase.MemoUsecase
}

// New loads configuration, initializes logging, opens the file-backed store
// and returns a ready App.
func New() (*App, error) {
	cfg := config.LoadConfig()

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Directory); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	medium, err := store.NewFileMedium(cfg.Store.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	st := store.NewStore(medium, logger.Log)
	repo := repository.NewMemoRepository(st, logger.Log)

	return &App{
		Config: cfg,
		Memos:  usecase.NewMemoUsecase(repo, logger.Log, cfg.List.PageSize),
	}, nil
}

// Close flushes and closes logging resources.
func (a *App) Close() {
	logger.CloseLogger()
}
