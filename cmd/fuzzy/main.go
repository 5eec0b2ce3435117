// fuzzy evaluates fuzzy-inference rule sets.
// Definitions live in YAML files or in the local store under .fuzzy/.
package main

import (
	"os"

	"github.com/corey/fuzzy/cmd/fuzzy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
