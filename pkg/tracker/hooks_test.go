package tracker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/gitmeta/pkg/tracker"
)

func TestInstallHooks(t *testing.T) {
	t.Parallel()

	exe := filepath.Join(t.TempDir(), "gitmeta")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	t.Run("CreatesSymlinks", func(t *testing.T) {
		t.Parallel()

		hooksDir := t.TempDir()
		require.NoError(t, tracker.InstallHooks(hooksDir, exe))

		for _, name := range tracker.HookNames {
			target, err := os.Readlink(filepath.Join(hooksDir, name))
			require.NoError(t, err)
			assert.Equal(t, exe, target)
		}
	})

	t.Run("IsIdempotent", func(t *testing.T) {
		t.Parallel()

		hooksDir := t.TempDir()
		require.NoError(t, tracker.InstallHooks(hooksDir, exe))
		require.NoError(t, tracker.InstallHooks(hooksDir, exe))
	})

	t.Run("LeavesForeignHookAlone", func(t *testing.T) {
		t.Parallel()

		hooksDir := t.TempDir()
		foreign := filepath.Join(hooksDir, "pre-commit")
		require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\nexit 0\n"), 0o755))

		require.NoError(t, tracker.InstallHooks(hooksDir, exe))

		// The occupied slot is untouched; the free one is linked.
		content, err := os.ReadFile(foreign)
		require.NoError(t, err)
		assert.Contains(t, string(content), "exit 0")

		_, err = os.Readlink(filepath.Join(hooksDir, "post-checkout"))
		require.NoError(t, err)
	})

	t.Run("MissingHooksDirIsFatal", func(t *testing.T) {
		t.Parallel()

		err := tracker.InstallHooks(filepath.Join(t.TempDir(), "absent"), exe)
		require.ErrorIs(t, err, tracker.ErrNoHooksDir)
	})
}
