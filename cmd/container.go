package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/compozy/hellopr/internal/config"
	"github.com/compozy/hellopr/internal/logging"
	"github.com/compozy/hellopr/internal/orchestrator"
	"github.com/compozy/hellopr/internal/repository"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg *config.Config

	logger    *zap.Logger
	transport *repository.Transport
	ghRepo    repository.GithubRepository
	prOrch    *orchestrator.PullRequestOrchestrator
}

// newContainer loads the configuration and wires the GitHub client.
// Rate-limit notices are written to out.
func newContainer(fsRepo repository.FileSystemRepository, opts *rootOptions, out io.Writer) (*container, error) {
	cfg, err := config.LoadConfig(fsRepo, opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded", zap.Stringer("config", cfg))

	transport := repository.NewTransport(cfg.Token,
		repository.WithBaseURL(cfg.APIURL),
		repository.WithOutput(out),
		repository.WithLogger(logger),
	)
	ghRepo := repository.NewGithubRepository(transport, cfg.PerPage)
	prOrch := orchestrator.NewPullRequestOrchestrator(ghRepo, logger)

	return &container{
		cfg:       cfg,
		logger:    logger,
		transport: transport,
		ghRepo:    ghRepo,
		prOrch:    prOrch,
	}, nil
}

// close flushes buffered log entries.
func (c *container) close() {
	_ = c.logger.Sync() //nolint:errcheck // syncing stderr fails on some terminals
}

// withTimeout bounds ctx when timeout is positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
