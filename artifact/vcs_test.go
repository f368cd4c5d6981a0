package artifact

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-curator/internal/config"
)

type fakeRunner struct {
	calls   [][]string
	status  []byte
	failCmd string
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{dir}, args...))

	if f.failCmd != "" && args[0] == f.failCmd {
		return nil, errors.New("exit status 1")
	}

	if args[0] == "status" {
		return f.status, nil
	}

	return nil, nil
}

func (f *fakeRunner) subcommands() []string {
	cmds := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		cmds = append(cmds, call[1])
	}

	return cmds
}

func newTestGitPublisher(run runner) *GitPublisher {
	return &GitPublisher{remote: "origin", branch: "main", run: run, logger: testLogger()}
}

func TestGitPublisher_Publish(t *testing.T) {
	path := filepath.Join("/repo", "feeds", "golang.xml")

	t.Run("commits and pushes a changed artifact", func(t *testing.T) {
		run := &fakeRunner{status: []byte(" M golang.xml\n")}
		p := newTestGitPublisher(run)

		require.NoError(t, p.Publish(context.Background(), path, "publish golang"))

		assert.Equal(t, []string{"add", "status", "commit", "push"}, run.subcommands())

		for _, call := range run.calls {
			assert.Equal(t, filepath.Join("/repo", "feeds"), call[0])
		}

		commit := run.calls[2]
		assert.Equal(t, []string{"commit", "-m", "publish golang"}, commit[1:])

		push := run.calls[3]
		assert.Equal(t, []string{"push", "origin", "main"}, push[1:])
	})

	t.Run("skips commit when the artifact is unchanged", func(t *testing.T) {
		run := &fakeRunner{status: []byte("")}
		p := newTestGitPublisher(run)

		require.NoError(t, p.Publish(context.Background(), path, "publish golang"))
		assert.Equal(t, []string{"add", "status"}, run.subcommands())
	})

	t.Run("staging failure aborts", func(t *testing.T) {
		run := &fakeRunner{failCmd: "add"}
		p := newTestGitPublisher(run)

		err := p.Publish(context.Background(), path, "publish golang")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stage artifact")
	})

	t.Run("push failure aborts", func(t *testing.T) {
		run := &fakeRunner{status: []byte(" M golang.xml\n"), failCmd: "push"}
		p := newTestGitPublisher(run)

		err := p.Publish(context.Background(), path, "publish golang")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to push artifact")
	})
}

func TestNewPublisher(t *testing.T) {
	logger := testLogger()

	disabled := NewPublisher(config.GitConfig{Enabled: false}, logger)
	assert.IsType(t, NoopPublisher{}, disabled)
	assert.NoError(t, disabled.Publish(context.Background(), "/tmp/feed.xml", "msg"))

	enabled := NewPublisher(config.GitConfig{Enabled: true, Remote: "origin", Branch: "main"}, logger)
	assert.IsType(t, &GitPublisher{}, enabled)
}
