package git

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output per git subcommand.
type fakeRunner struct {
	responses map[string]string
	errs      map[string]error
	calls     [][]string
}

func (r *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	key := args[0]
	if err, ok := r.errs[key]; ok {
		return "", err
	}
	return r.responses[key], nil
}

func diffIndexLine(status, path string) string {
	sha := strings.Repeat("0", 40)
	return fmt.Sprintf(":100644 100644 %s %s %s\t%s", sha, sha, status, path)
}

func TestParseDiffIndexLine(t *testing.T) {
	t.Parallel()

	t.Run("StripsFixedWidthHeader", func(t *testing.T) {
		t.Parallel()

		path, ok := parseDiffIndexLine(diffIndexLine("M", "docs/readme text.md"))
		require.True(t, ok)
		assert.Equal(t, "docs/readme text.md", path)
	})

	t.Run("RejectsShortLine", func(t *testing.T) {
		t.Parallel()

		_, ok := parseDiffIndexLine(":100644 100644 garbage")
		assert.False(t, ok)
	})
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a.txt", "b/c.txt"}, splitLines("a.txt\nb/c.txt\n"))
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines("\n"))
}

func TestStagedFallsBackToEmptyTree(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		responses: map[string]string{
			"diff-index": diffIndexLine("A", "a.txt") + "\n",
		},
		errs: map[string]error{
			"rev-parse": &QueryError{Args: []string{"rev-parse", "HEAD"}, ExitCode: 128},
		},
	}

	paths, err := NewWithRunner(runner).Staged().Paths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)

	// The diff must have been taken against the empty-tree sentinel.
	var diffArgs []string
	for _, call := range runner.calls {
		if call[0] == "diff-index" {
			diffArgs = call
		}
	}
	require.NotNil(t, diffArgs)
	assert.Equal(t, []string{"diff-index", "--cached", EmptyTree}, diffArgs)
}

func TestStagedUsesHead(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		responses: map[string]string{
			"rev-parse":  "abc123\n",
			"diff-index": "",
		},
	}

	paths, err := NewWithRunner(runner).Staged().Paths(context.Background())
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Contains(t, runner.calls, []string{"diff-index", "--cached", "abc123"})
}

func TestAllTrackedPropagatesQueryError(t *testing.T) {
	t.Parallel()

	queryErr := &QueryError{Args: []string{"ls-files"}, ExitCode: 128, Stderr: "fatal: not a git repository"}
	runner := &fakeRunner{errs: map[string]error{"ls-files": queryErr}}

	_, err := NewWithRunner(runner).AllTracked().Paths(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 128")
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestChangedBetween(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		responses: map[string]string{"diff": "a.txt\nsub/b.txt\n"},
	}

	paths, err := NewWithRunner(runner).ChangedBetween("old", "new").Paths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, paths)
	assert.Contains(t, runner.calls, []string{"diff", "--name-only", "old", "new"})
}

func TestPathSourceIsRestartable(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]string{"ls-files": "a.txt\n"}}
	src := NewWithRunner(runner).AllTracked()

	ctx := context.Background()
	first, err := src.Paths(ctx)
	require.NoError(t, err)
	second, err := src.Paths(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, runner.calls, 2, "each Paths call re-runs the query")
}
