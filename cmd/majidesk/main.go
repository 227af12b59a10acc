package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/majisoft/majidesk/internal/client/api"
	"github.com/majisoft/majidesk/internal/client/auth"
	"github.com/majisoft/majidesk/internal/client/cli"
	"github.com/majisoft/majidesk/internal/client/eventbus"
	"github.com/majisoft/majidesk/internal/client/iocli"
	"github.com/majisoft/majidesk/internal/client/storage"
	"github.com/majisoft/majidesk/internal/client/storage/boltdb"
	"github.com/majisoft/majidesk/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// .env не обязателен, переменные окружения перекрывают значения флагов по умолчанию
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", envOr("MAJIDESK_SERVER", "http://localhost:8000"), "Server URL")
	dbPath := flag.String("db", envOr("MAJIDESK_DB", "majidesk-client.db"), "Path to local database")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*debug)

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"help"}
	}
	command := args[0]

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Токены лежат в BoltDB зашифрованными; ключ машинно-локальный
	key, err := crypto.LoadOrCreateKey(keyPath(*dbPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load encryption key: %v\n", err)
		os.Exit(1)
	}
	tokens, err := storage.NewCipherStore(boltStorage, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init token encryption: %v\n", err)
		os.Exit(1)
	}

	bus := eventbus.New(logger)
	apiClient := api.NewClient(*serverURL, tokens, bus, logger)
	manager := auth.NewManager(apiClient, tokens, bus, logger)
	c := cli.New(apiClient, manager, bus, iocli.NewStdio())

	// login и status восстанавливают сессию сами; остальным командам
	// она нужна до запуска
	if command != "login" && command != "status" && command != "help" {
		if err := manager.Bootstrap(ctx); err != nil {
			logger.Debug("session restore failed", "error", err)
		}
	}

	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// keyPath кладёт файл ключа рядом с базой
func keyPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), ".majidesk-key")
}

func printVersion() {
	fmt.Printf("MajiDesk Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
