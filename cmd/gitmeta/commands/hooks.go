package commands

import (
	"github.com/spf13/cobra"
)

// preCommitCmd captures metadata for the paths staged in the index. Git runs
// it through the pre-commit hook before every commit is recorded.
var preCommitCmd = &cobra.Command{
	Use:   "pre-commit",
	Short: "Capture metadata for staged files (git pre-commit hook)",
	Args:  cobra.ArbitraryArgs, // git passes no meaningful arguments
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.tracker.Capture(ctx, s.git.Staged())
	},
}

// postCheckoutCmd restores metadata onto the paths a checkout changed. Git
// invokes the post-checkout hook with the previous HEAD, the new HEAD, and a
// branch-checkout flag.
var postCheckoutCmd = &cobra.Command{
	Use:   "post-checkout <old-ref> <new-ref> [flag]",
	Short: "Restore metadata for files changed by a checkout (git post-checkout hook)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.tracker.Restore(ctx, s.git.ChangedBetween(args[0], args[1]))
	},
}

// restoreCmd reapplies stored metadata onto every tracked file, typically
// right after a fresh clone.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore metadata for all tracked files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.tracker.Restore(ctx, s.git.AllTracked())
	},
}
