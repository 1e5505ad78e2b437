package pretty

import "github.com/yaklabco/goldif/pkg/runner"

// stdinName is how standard input is labelled in output.
const stdinName = "<stdin>"

// DisplayName returns the label used for an outcome in output.
func DisplayName(outcome runner.FileOutcome) string {
	if outcome.Path == runner.StdinPath {
		return stdinName
	}
	if outcome.DisplayPath != "" {
		return outcome.DisplayPath
	}
	return outcome.Path
}
