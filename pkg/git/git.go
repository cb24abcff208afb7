// Package git wraps the git executable with the handful of queries the hook
// orchestrator needs. The command-line binary is used rather than a Go git
// library so the tool behaves identically to whatever git invoked the hook,
// whatever the repository's configuration.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// EmptyTree is the well-known hash of git's empty tree object. It stands in
// for HEAD as a diff baseline on a repository's very first commit, when HEAD
// does not resolve yet.
const EmptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// diffIndexPathOffset is where the path starts on a diff-index output line.
// The line format is ":100644 100644 <sha> <sha> <status>\t<path>"; with
// 40-character object names the header is fixed-width at 99 bytes.
const diffIndexPathOffset = 99

// Runner executes a git query and returns its standard output. It exists so
// tests can substitute canned output for the real binary.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// execRunner runs git via os/exec in a fixed working directory.
type execRunner struct {
	dir string
}

func (r *execRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", &QueryError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
		}
	}

	return stdout.String(), nil
}

// Client issues the version-control queries the orchestrator depends on.
type Client struct {
	runner Runner
	dir    string
}

// New returns a client that runs git in dir. An empty dir uses the process
// working directory, which is the repository root when git invokes a hook.
func New(dir string) *Client {
	return &Client{
		runner: &execRunner{dir: dir},
		dir:    dir,
	}
}

// NewWithRunner returns a client backed by a custom runner. Used in tests.
func NewWithRunner(r Runner) *Client {
	return &Client{runner: r}
}

// TopLevel returns the absolute path of the repository's working tree root.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not inside a git working tree: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HooksDir returns the absolute path of the repository's hooks directory.
func (c *Client) HooksDir(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}

	dir := strings.TrimSpace(out)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.dir, dir)
	}
	return dir, nil
}

// Head resolves the current HEAD reference. This legitimately fails on a
// fresh repository with no commits; callers fall back to EmptyTree.
func (c *Client) Head(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LsFiles lists every path git currently tracks.
func (c *Client) LsFiles(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "ls-files")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// DiffIndex lists paths whose staged content differs from ref.
func (c *Client) DiffIndex(ctx context.Context, ref string) ([]string, error) {
	out, err := c.runner.Run(ctx, "diff-index", "--cached", ref)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, line := range splitLines(out) {
		if path, ok := parseDiffIndexLine(line); ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// DiffNames lists paths that differ between two references, bare of any
// metadata prefix.
func (c *Client) DiffNames(ctx context.Context, oldRef, newRef string) ([]string, error) {
	out, err := c.runner.Run(ctx, "diff", "--name-only", oldRef, newRef)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Add stages a path for inclusion in the next commit.
func (c *Client) Add(ctx context.Context, path string) error {
	_, err := c.runner.Run(ctx, "add", "--", path)
	return err
}

// parseDiffIndexLine strips the fixed-width mode/hash header from a
// diff-index output line, leaving the path.
func parseDiffIndexLine(line string) (string, bool) {
	if len(line) <= diffIndexPathOffset {
		return "", false
	}
	return line[diffIndexPathOffset:], true
}

// splitLines splits command output into non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
