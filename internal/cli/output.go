package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter renders command results as text or JSON. Verbose logs
// go to ErrWriter so they never corrupt JSON output on stdout.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// VerboseLog writes a diagnostic line to stderr when --verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.ErrWriter, format+"\n", args...)
	}
}

// Emit writes the result: the prepared text in text mode, or the
// payload marshaled with indentation in JSON mode.
func (f *OutputFormatter) Emit(text string, payload any) error {
	if f.Format == "json" {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(f.Writer, string(data))
		return nil
	}
	fmt.Fprint(f.Writer, text)
	return nil
}
