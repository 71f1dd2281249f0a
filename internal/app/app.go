// Package app wires configuration, storage, clients, and services into
// the shared application core used by cmd/marketlens-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/marketlens/internal/clients/gemini"
	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
	"github.com/bobmcallan/marketlens/internal/services/portfolio"
	"github.com/bobmcallan/marketlens/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	AIClient         interfaces.AIClient
	AnalysisService  interfaces.AnalysisService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logger, storage, the Gemini client, and all
// services. configPath may be empty, in which case the default resolution
// logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: provided path, MARKETLENS_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("MARKETLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "marketlens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/marketlens.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// The AI client is optional: without a key the portfolio screens still
	// work, only analysis is unavailable.
	var aiClient interfaces.AIClient
	if geminiKey, err := common.ResolveAPIKey(config); err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	} else {
		ctx := context.Background()
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithTemperature(config.Clients.Gemini.Temperature),
			gemini.WithMaxOutputTokens(config.Clients.Gemini.MaxOutputTokens),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			aiClient = client
		}
	}

	analysisService := analysis.NewService(aiClient, storageManager.ReportStore(), logger)
	portfolioService := portfolio.NewService(storageManager.PortfolioStore(), logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		AIClient:         aiClient,
		AnalysisService:  analysisService,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
