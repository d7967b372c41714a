package cli

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/db"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/knowledge"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/recipe"
	"github.com/hammamikhairi/souschef/internal/storage"
)

// Wire builds the logger, database, recipe source, knowledge base,
// assistant and engine from app.Config. Everything it opens is released by
// app.Close.
func Wire(ctx context.Context, app *App) error {
	cfg := app.Config

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	// Logs go to a rotating file by default so the REPL stays clean.
	logOut, logCloser := logger.OpenOutput(cfg.LogFile)
	app.OnClose(logCloser)

	// Route the standard log package to the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(level, logOut)
	app.Log = log
	for _, w := range app.Warnings {
		log.Warn("config: %v", w)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening session database %s: %w", cfg.DBPath, err)
	}
	app.OnClose(database)
	log.Info("session database: %s", cfg.DBPath)

	var recipeOpts []recipe.Option
	if cfg.RecipesFile != "" {
		extra, err := recipe.LoadFile(cfg.RecipesFile)
		if err != nil {
			return fmt.Errorf("loading recipes: %w", err)
		}
		recipeOpts = append(recipeOpts, recipe.WithRecipes(extra...))
		log.Info("loaded %d recipes from %s", len(extra), cfg.RecipesFile)
	}
	recipes := recipe.NewMemorySource(log.Named("recipe"), recipeOpts...)

	var kb domain.KnowledgeBase = knowledge.Default()
	if cfg.KnowledgeFile != "" {
		loaded, err := knowledge.LoadFile(cfg.KnowledgeFile)
		if err != nil {
			return fmt.Errorf("loading knowledge base: %w", err)
		}
		kb = loaded
		log.Info("knowledge base: %s", cfg.KnowledgeFile)
	}

	app.Assistant = assistant.New(kb, log.Named("assistant"))
	store := storage.NewSQLiteStore(database, log.Named("storage"))
	app.Engine = engine.New(recipes, store, app.Assistant, log.Named("engine"))
	return nil
}
