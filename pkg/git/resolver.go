package git

import (
	"context"

	"github.com/marmos91/gitmeta/internal/logger"
)

// A PathSource produces the repository-relative paths relevant to one hook
// event. Sources are lazy and restartable: the underlying git query runs on
// each Paths call, so a source can be consumed more than once.
type PathSource interface {
	Paths(ctx context.Context) ([]string, error)
}

// PathSourceFunc adapts a function to the PathSource interface.
type PathSourceFunc func(ctx context.Context) ([]string, error)

// Paths implements PathSource.
func (f PathSourceFunc) Paths(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// AllTracked resolves every path git currently tracks.
func (c *Client) AllTracked() PathSource {
	return PathSourceFunc(func(ctx context.Context) ([]string, error) {
		return c.LsFiles(ctx)
	})
}

// Staged resolves the paths staged for the next commit, diffed against HEAD.
// When HEAD cannot be resolved (first commit of a fresh repository) the
// empty-tree sentinel is used as the baseline instead.
func (c *Client) Staged() PathSource {
	return PathSourceFunc(func(ctx context.Context) ([]string, error) {
		ref, err := c.Head(ctx)
		if err != nil {
			logger.Debug("HEAD not resolvable, diffing against empty tree", logger.KeyRef, EmptyTree)
			ref = EmptyTree
		}
		return c.DiffIndex(ctx, ref)
	})
}

// ChangedBetween resolves the paths that differ between two references, used
// after a checkout moves the working tree from oldRef to newRef.
func (c *Client) ChangedBetween(oldRef, newRef string) PathSource {
	return PathSourceFunc(func(ctx context.Context) ([]string, error) {
		return c.DiffNames(ctx, oldRef, newRef)
	})
}
