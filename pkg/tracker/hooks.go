package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marmos91/gitmeta/internal/logger"
)

// HookNames lists the hook slots this tool installs itself into.
var HookNames = []string{"pre-commit", "post-checkout"}

// ErrNoHooksDir is returned when the repository has no hooks directory,
// which usually means the command did not run inside a git working copy.
var ErrNoHooksDir = errors.New("hooks directory not found")

// InstallHooks symlinks the executable at exePath into each hook slot under
// hooksDir. A slot already linked to exePath is left alone; a slot occupied
// by anything else is reported and skipped, never overwritten.
func InstallHooks(hooksDir, exePath string) error {
	info, err := os.Stat(hooksDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoHooksDir, hooksDir)
	}

	for _, name := range HookNames {
		hookPath := filepath.Join(hooksDir, name)

		if target, err := os.Readlink(hookPath); err == nil {
			if target == exePath {
				logger.Debug("hook already installed", logger.KeyPath, hookPath)
				continue
			}
			logger.Warn("hook slot occupied by another program, skipping",
				logger.KeyPath, hookPath, "target", target)
			continue
		}

		if _, err := os.Lstat(hookPath); err == nil {
			logger.Warn("hook slot occupied by another program, skipping",
				logger.KeyPath, hookPath)
			continue
		}

		if err := os.Symlink(exePath, hookPath); err != nil {
			return fmt.Errorf("installing %s hook: %w", name, err)
		}
		logger.Info("installed hook", logger.KeyPath, hookPath)
	}

	return nil
}
