// Package tracker moves file metadata between the working tree and the
// metadata store: capture reads live mode/mtime/atime into the store, restore
// applies stored values back onto files after a checkout.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/marmos91/gitmeta/internal/logger"
	"github.com/marmos91/gitmeta/pkg/git"
	"github.com/marmos91/gitmeta/pkg/store"
)

// modeMask selects the bits worth preserving: permissions plus
// setuid/setgid/sticky. File type bits are git's business, not ours.
const modeMask = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// Stager stages a path with the version-control tool for the next commit.
// *git.Client satisfies it; tests substitute a stub.
type Stager interface {
	Add(ctx context.Context, path string) error
}

// Tracker drives capture and restore passes over a repository working tree.
type Tracker struct {
	store  *store.Store
	stager Stager

	// root is the working tree root; resolver paths are relative to it.
	root string

	// storePath is the repository-relative location of the store file,
	// staged after every capture pass so the metadata travels with the
	// commit it describes.
	storePath string
}

// New returns a tracker operating on the working tree rooted at root.
func New(st *store.Store, stager Stager, root, storePath string) *Tracker {
	return &Tracker{
		store:     st,
		stager:    stager,
		root:      root,
		storePath: storePath,
	}
}

// Capture reads live filesystem metadata for every path the source resolves
// and upserts the corresponding store records. Paths that no longer exist on
// disk have their stale records deleted; files vanish routinely between hook
// invocations and that is not an error. The pass ends with a store commit and
// the store file being staged.
func (t *Tracker) Capture(ctx context.Context, src git.PathSource) error {
	start := time.Now()

	paths, err := src.Paths(ctx)
	if err != nil {
		return err
	}

	captured, dropped := 0, 0
	for _, path := range paths {
		if path == t.storePath {
			continue
		}

		info, err := os.Lstat(filepath.Join(t.root, path))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat %q: %w", path, err)
			}
			logger.Debug("path vanished, dropping record", logger.KeyPath, path)
			if err := t.store.Delete(path); err != nil {
				return err
			}
			dropped++
			continue
		}

		rec := store.Record{
			Mode:  uint32(info.Mode() & modeMask),
			Mtime: info.ModTime().Unix(),
			Atime: atime(info),
		}
		if err := t.store.Put(path, rec); err != nil {
			return err
		}
		captured++
	}

	// Commit before staging so the file content git picks up is current.
	if err := t.store.Commit(); err != nil {
		return err
	}
	if err := t.stager.Add(ctx, t.storePath); err != nil {
		return fmt.Errorf("staging %q: %w", t.storePath, err)
	}

	logger.Info("capture complete",
		"captured", captured,
		"dropped", dropped,
		"duration_ms", logger.Duration(start))
	return nil
}

// Restore applies stored metadata back onto every path the source resolves.
// A missing record is fatal: the resolver names only paths this tool should
// have captured, so a miss means the store and the tree disagree. Per-path
// apply failures are logged and counted but never abort the batch.
func (t *Tracker) Restore(ctx context.Context, src git.PathSource) error {
	start := time.Now()

	paths, err := src.Paths(ctx)
	if err != nil {
		return err
	}

	applied, failed, skipped := 0, 0, 0
	for _, path := range paths {
		if path == t.storePath {
			continue
		}

		rec, err := t.store.Get(path)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("path was never captured: %w", err)
			}
			return err
		}

		target := filepath.Join(t.root, path)
		info, err := os.Lstat(target)
		if err != nil {
			logger.Warn("cannot restore missing file", logger.KeyPath, path, logger.KeyError, err)
			failed++
			continue
		}

		// Chtimes and Chmod follow symlinks; applying through a link
		// would touch its target instead of the link itself.
		if info.Mode()&fs.ModeSymlink != 0 {
			logger.Debug("skipping symlink", logger.KeyPath, path)
			skipped++
			continue
		}

		if err := applyRecord(target, rec); err != nil {
			logger.Warn("failed to apply metadata", logger.KeyPath, path, logger.KeyError, err)
			failed++
			continue
		}
		applied++
	}

	logger.Info("restore complete",
		"applied", applied,
		"failed", failed,
		"skipped", skipped,
		"duration_ms", logger.Duration(start))
	return nil
}

// applyRecord sets timestamps first, then permission bits.
func applyRecord(target string, rec store.Record) error {
	atime := time.Unix(rec.Atime, 0)
	mtime := time.Unix(rec.Mtime, 0)
	if err := os.Chtimes(target, atime, mtime); err != nil {
		return err
	}
	return os.Chmod(target, rec.FileMode())
}
