package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/obradev/obra/internal/api"
	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/cli"
	"github.com/obradev/obra/internal/db"
	"github.com/obradev/obra/internal/i18n"
	"github.com/obradev/obra/internal/session"
	"github.com/obradev/obra/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides for development; absence is fine.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.obra/obra.db
	dbPath := os.Getenv("OBRA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".obra", "obra.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	authProvider := auth.Provider(auth.NewScopedProvider(store.NewSQLiteCredentials(database)))

	cfg := api.LoadConfig()
	var observer api.Observer
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(cfg, auth.TokenFunc{Provider: authProvider}, observer)

	bundle, err := i18n.NewBundle(storedLanguage(authProvider))
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	app := &cli.App{
		Session:     session.NewManager(client),
		API:         client,
		Auth:        authProvider,
		Cache:       store.NewSQLiteProjectCache(database),
		State:       store.NewSQLiteUIState(database),
		Bundle:      bundle,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}

// storedLanguage returns the language saved with the credentials, falling
// back to the OBRA_LANG env var and then English.
func storedLanguage(provider auth.Provider) string {
	if creds, err := provider.Current(context.Background()); err == nil && creds.Language != "" {
		return creds.Language
	}
	if v := os.Getenv("OBRA_LANG"); v != "" && i18n.Supported(v) {
		return v
	}
	return "en"
}
