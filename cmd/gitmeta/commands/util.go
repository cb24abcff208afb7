package commands

import (
	"context"
	"path/filepath"

	"github.com/marmos91/gitmeta/internal/logger"
	"github.com/marmos91/gitmeta/pkg/git"
	"github.com/marmos91/gitmeta/pkg/store"
	"github.com/marmos91/gitmeta/pkg/tracker"
)

// session bundles what a hook command needs: a git client anchored at the
// repository root and an open metadata store. Close must run on every exit
// path so buffered store writes are flushed.
type session struct {
	git     *git.Client
	store   *store.Store
	tracker *tracker.Tracker
	root    string
}

// openSession locates the repository the process runs in and opens its store.
func openSession(ctx context.Context) (*session, error) {
	root, err := git.New("").TopLevel(ctx)
	if err != nil {
		return nil, err
	}

	client := git.New(root)
	st, err := store.Open(filepath.Join(root, cfg.Store.Path))
	if err != nil {
		return nil, err
	}

	return &session{
		git:     client,
		store:   st,
		tracker: tracker.New(st, client, root, cfg.Store.Path),
		root:    root,
	}, nil
}

// Close flushes and releases the store handle.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Error("failed to close store", logger.KeyError, err)
	}
}
