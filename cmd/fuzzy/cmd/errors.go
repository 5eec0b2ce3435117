package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corey/fuzzy/internal/domain/fuzzy"
)

// ExitCode maps a command error to a process exit code. Evaluations that
// produced no crisp value exit 2, everything else exits 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fuzzy.ErrNoRuleFired), errors.Is(err, fuzzy.ErrNoActivation):
		return 2
	default:
		return 1
	}
}

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns guidance for a store another process holds open.
func diagnoseDBLock(dbPath string) string {
	return fmt.Sprintf("database %s is locked by another process\n"+
		"  → a running 'fuzzy watch' holds it open\n"+
		"  → find the process:  ps aux | grep 'fuzzy'\n"+
		"  → stop it, then retry your command", dbPath)
}
