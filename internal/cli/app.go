// Package cli implements the docket command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	casefile "github.com/okian/docket/internal/adapters/casefile"
	ledger "github.com/okian/docket/internal/adapters/ledger"
	repository "github.com/okian/docket/internal/adapters/repository"
	service "github.com/okian/docket/internal/app"
	"github.com/okian/docket/internal/config"
	"github.com/okian/docket/pkg/logger"
)

// App holds what the commands share. Config is loaded on first use unless
// set beforehand.
type App struct {
	Out        io.Writer
	Err        io.Writer
	ConfigPath string
	Config     *config.Config
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) errOut() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

// setup loads the configuration and initialises logging.
func (a *App) setup(ctx context.Context) error {
	if a.Config == nil {
		var (
			cfg *config.Config
			err error
		)
		if a.ConfigPath != "" {
			cfg, err = config.LoadFile(ctx, a.ConfigPath)
		} else {
			cfg, err = config.Load(ctx)
		}
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if err := logger.Init(logger.WithWriter(a.errOut()), logger.WithFormat(a.Config.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(a.Config.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", a.Config.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// openSource returns the case source selected by the configuration.
func (a *App) openSource() (service.CaseSource, error) {
	switch a.Config.Source {
	case config.SourceSQLite:
		l, err := ledger.Open(a.Config.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("opening ledger: %w", err)
		}
		return l, nil
	default:
		return casefile.New(a.Config.DatasetPath), nil
	}
}

// startService wires and starts the service over the configured source.
// Callers must Stop it.
func (a *App) startService(ctx context.Context, extra ...service.Option) (*service.Service, error) {
	roster, err := a.Config.Roster()
	if err != nil {
		return nil, err
	}
	src, err := a.openSource()
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithSource(src),
		service.WithRoster(roster),
		service.WithCapacity(a.Config.Capacity),
		service.WithAdjournmentRate(a.Config.AdjournmentRate),
		service.WithSeed(a.Config.Seed),
		service.WithWeights(a.Config.ScoringWeights()),
		service.WithCaseFold(a.Config.CaseFold),
		service.WithStoreOptions(repository.WithoutMetricsUpdater()),
	}
	svc := service.New(append(opts, extra...)...)
	if err := svc.Start(ctx); err != nil {
		if closer, ok := src.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	return svc, nil
}
