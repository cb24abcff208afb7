package git

import (
	"fmt"
	"strings"
)

// QueryError describes a git query that exited non-zero. Queries the hook
// orchestrator depends on for correctness treat this as fatal: an incomplete
// path list would silently corrupt the metadata store.
type QueryError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("git %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
