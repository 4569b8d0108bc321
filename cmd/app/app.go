package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/overflow"
	"github.com/akyairhashvil/notifit/internal/util"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// app wires settings, logging, fonts, the measurement surface and the
// database for one command run.
type app struct {
	settings  *config.Settings
	logger    *zap.Logger
	fonts     *measure.FontLoader
	ticker    *measure.Ticker
	validator *validate.Validator
	cache     *overflow.Cache
	db        *database.Database
}

// newApp loads settings and starts font loading. The TUI owns the terminal,
// so it logs to the configured file; CLI commands log to stderr.
func newApp(opts *options, logToFile bool) (*app, error) {
	paths := config.ConfigPaths()
	if opts.configFile != "" {
		paths = append(paths, util.ExpandHome(opts.configFile))
	}
	s, err := config.LoadFrom(util.DataDir(config.AppName), paths...)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		s.DBPath = util.ExpandHome(opts.dbPath)
	}
	if opts.logLevel != "" {
		s.LogLevel = opts.logLevel
	}

	logFile := ""
	if logToFile {
		logFile = s.LogFile
	}
	logger, err := util.NewLogger(s.LogLevel, logFile, false)
	if err != nil {
		return nil, err
	}

	fonts := measure.LoadFonts(s.Fonts, logger)
	ticker := measure.NewTicker(s.FrameInterval())
	surface := measure.NewPDFSurface(fonts, ticker, logger)
	cache := overflow.NewCache(0)
	evaluator := overflow.New(surface, fonts, overflow.WithCache(cache), overflow.WithLogger(logger))

	logger.Debug("settings loaded",
		zap.String("db", s.DBPath),
		zap.Int("frame_rate", s.FrameRate),
		zap.Int("fonts_configured", len(s.Fonts)))

	return &app{
		settings:  s,
		logger:    logger,
		fonts:     fonts,
		ticker:    ticker,
		validator: validate.New(evaluator, logger),
		cache:     cache,
	}, nil
}

// database opens the sheet store on first use.
func (a *app) database(ctx context.Context) (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(ctx, a.settings.DBPath, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *app) Close() {
	a.ticker.Stop()
	if a.db != nil {
		util.LogError(a.logger, "close database", a.db.Close())
	}
	if hits, misses := a.cache.Stats(); hits+misses > 0 {
		a.logger.Debug("measurement cache", zap.Int("hits", hits), zap.Int("misses", misses))
	}
	_ = a.logger.Sync()
}
