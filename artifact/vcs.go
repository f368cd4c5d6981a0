package artifact

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"feed-curator/internal/config"
)

// Publisher pushes a freshly written artifact to its durable target.
type Publisher interface {
	Publish(ctx context.Context, path, message string) error
}

// NoopPublisher skips version control entirely.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string) error { return nil }

// runner executes git in a working directory.
type runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

type gitRunner struct{}

func (gitRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer

	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// GitPublisher commits the artifact and pushes it to the configured
// remote as a single commit per publication run.
type GitPublisher struct {
	remote string
	branch string
	run    runner
	logger *slog.Logger
}

// NewGitPublisher creates a Publisher backed by the git CLI.
func NewGitPublisher(cfg config.GitConfig, logger *slog.Logger) *GitPublisher {
	return &GitPublisher{
		remote: cfg.Remote,
		branch: cfg.Branch,
		run:    gitRunner{},
		logger: logger,
	}
}

// NewPublisher returns the publisher matching the configuration: a git
// publisher when enabled, otherwise a no-op.
func NewPublisher(cfg config.GitConfig, logger *slog.Logger) Publisher {
	if !cfg.Enabled {
		return NoopPublisher{}
	}

	return NewGitPublisher(cfg, logger)
}

// Publish stages, commits and pushes the artifact at path. An artifact
// that did not change since the last commit is not an error.
func (p *GitPublisher) Publish(ctx context.Context, path, message string) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if _, err := p.run.Run(ctx, dir, "add", base); err != nil {
		return fmt.Errorf("failed to stage artifact: %w", err)
	}

	out, err := p.run.Run(ctx, dir, "status", "--porcelain", base)
	if err != nil {
		return fmt.Errorf("failed to check artifact status: %w", err)
	}

	if len(bytes.TrimSpace(out)) == 0 {
		p.logger.InfoContext(ctx, "artifact unchanged, nothing to commit", "path", path)
		return nil
	}

	if _, err := p.run.Run(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit artifact: %w", err)
	}

	if _, err := p.run.Run(ctx, dir, "push", p.remote, p.branch); err != nil {
		return fmt.Errorf("failed to push artifact: %w", err)
	}

	p.logger.InfoContext(ctx, "artifact pushed",
		"path", path,
		"remote", p.remote,
		"branch", p.branch)

	return nil
}
