package config

// Run carries per-invocation options that never persist to the config
// file.
type Run struct {
	// Command runs in the session before the shell turns interactive.
	Command string

	// LogFile, if set, receives a raw transcript of session output.
	LogFile string
}

// Validate checks the Run configuration for errors and returns any validation errors found.
func (cfg *Run) Validate() []error {
	var errors []error

	return errors
}
