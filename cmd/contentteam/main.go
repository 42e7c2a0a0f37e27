package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/groupchat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: contentteam [flags]\n\nRun the AI content creation team for Indian businesses.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "config/agents.yaml", "path to agent roster file (defaults used if missing)")
	regionalPath := flag.String("regional", "config/regional_settings.yaml", "path to regional settings file (defaults used if missing)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	outputDir := flag.String("output", "output", "directory for conversation logs and campaign artifacts")
	providerName := flag.String("provider", "", "force a provider (openai, azure, lmstudio); overrides SELECTED_PROVIDER")
	rounds := flag.Int("rounds", 0, "override max collaboration rounds (0 = use config)")
	brief := flag.String("brief", "", "run a single brief non-interactively and exit")
	contentType := flag.String("type", "general", "content type for -brief (blog, social_media, email, general)")
	verbose := flag.Bool("verbose", false, "show per-turn progress")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(*verbose)

	if err := run(logger, *configPath, *regionalPath, *outputDir, *providerName, *rounds, *brief, *contentType); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func run(logger zerolog.Logger, configPath, regionalPath, outputDir, providerName string, rounds int, brief, contentType string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := team.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if rounds > 0 {
		cfg.Team.MaxRounds = rounds
	}

	regional, err := team.LoadRegional(regionalPath)
	if err != nil {
		return err
	}

	var providerCfg team.ProviderConfig
	if providerName != "" {
		providerCfg, err = team.ResolveProviderKind(providerName)
	} else {
		providerCfg, err = team.ResolveProvider()
	}
	if err != nil {
		return err
	}

	gc := groupchat.New()
	gc.Logger = logger

	tm, err := team.New(cfg, regional, providerCfg, gc)
	if err != nil {
		return err
	}
	tm.Logger = logger
	tm.OutputDir = outputDir

	logger.Info().
		Str("provider", string(tm.Provider().Kind)).
		Str("model", tm.Provider().Model).
		Int("agents", len(tm.Config().Agents)).
		Str("primary_language", tm.Regional().Languages.Primary).
		Msg("team ready")

	if brief != "" {
		result, err := tm.CreateContent(ctx, team.ContentRequest{Brief: brief, ContentType: contentType})
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	return menuLoop(ctx, tm)
}
