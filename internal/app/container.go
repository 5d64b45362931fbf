// Package app wires application services to their infrastructure adapters.
package app

import (
	"context"

	"github.com/mdcognizant/cursor-sub001/internal/application/diagnose"
	"github.com/mdcognizant/cursor-sub001/internal/application/supervise"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/config"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/history"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/process"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/report"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/logger"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Container holds the dependency graph.
type Container struct {
	Config       domain.Config
	ConfigStore  *config.FileStore
	HistoryStore ports.HistoryRepository
	ReportStore  ports.ReportStore
	Factory      ports.ProcessFactory
	Supervisor   *supervise.Service
	Engine       *diagnose.Engine
	Logger       ports.Logger
	// Stdin is the single line source shared by the recovery prompt and
	// the interactive loop.
	Stdin ports.LineSource
}

// BuildContainer constructs the production dependency graph. Config and
// history corruption is recovered, never fatal.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	bootLog := logger.New(verbose)

	cfgStore := config.NewFileStore("", bootLog)
	cfg, err := cfgStore.Load()
	if err != nil {
		// Defaults were already substituted; keep going.
		bootLog.Warn("configuration loaded with defaults", map[string]interface{}{"error": err.Error()})
	}

	log := logger.NewWithFile(verbose || cfg.Verbose, cfg.LogFile)
	factory := process.NewFactory()
	historyStore := history.NewSQLiteStore(cfg.MaxHistory)
	reportStore := report.NewFileStore("")
	engine := diagnose.NewEngine(factory, log)

	supervisor := &supervise.Service{
		Executor: &supervise.Executor{Factory: factory, Logger: log},
		Config:   cfg,
		History:  historyStore,
		Logger:   log,
	}

	return &Container{
		Config:       cfg,
		ConfigStore:  cfgStore,
		HistoryStore: historyStore,
		ReportStore:  reportStore,
		Factory:      factory,
		Supervisor:   supervisor,
		Engine:       engine,
		Logger:       log,
	}, nil
}

// ReloadConfig refreshes the cached configuration after a config mutation.
func (c *Container) ReloadConfig() {
	cfg, err := c.ConfigStore.Load()
	if err != nil {
		c.Logger.Warn("configuration reload fell back to defaults", map[string]interface{}{"error": err.Error()})
	}
	c.Config = cfg
	c.Supervisor.Config = cfg
}
