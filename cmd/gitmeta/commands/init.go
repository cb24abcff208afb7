package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/gitmeta/pkg/tracker"
)

// initCmd captures metadata for every tracked file and installs the program
// as pre-commit and post-checkout hook code.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Capture metadata for all tracked files and install the git hooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		exe, err := os.Executable()
		if err != nil {
			return err
		}

		hooksDir, err := s.git.HooksDir(ctx)
		if err != nil {
			return err
		}

		if err := tracker.InstallHooks(hooksDir, exe); err != nil {
			return err
		}

		return s.tracker.Capture(ctx, s.git.AllTracked())
	},
}
