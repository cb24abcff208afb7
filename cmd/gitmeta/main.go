package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marmos91/gitmeta/cmd/gitmeta/commands"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// hookCommand maps the name gitmeta was invoked under to a subcommand. Git
// executes hooks by path, so a pre-commit symlink pointing at this binary
// arrives here with os.Args[0] == ".git/hooks/pre-commit".
func hookCommand() string {
	switch base := filepath.Base(os.Args[0]); base {
	case "pre-commit", "post-checkout":
		return base
	default:
		return ""
	}
}

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if hook := hookCommand(); hook != "" {
		os.Args = append([]string{os.Args[0], hook}, os.Args[1:]...)
	}

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gitmeta: %v\n", err)
		os.Exit(1)
	}
}
