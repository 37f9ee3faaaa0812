package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tapec/internal/compiler"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Function string `json:"function"`
	Accepted bool   `json:"accepted"`
	Code     string `json:"code,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <graph.cue>",
		Short: "Check a recorded graph against the supported contract",
		Long: `Check a recorded graph against the compiler's current contract
without emitting any code: function name present, auxiliary registries
empty, every operator inside the supported subset with well-formed
arity, every dependent variable bound to an existing node.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := LoadGraph(path)
	if err != nil {
		return err
	}

	result := ValidateResult{Function: g.FunctionName, Accepted: true}
	text := fmt.Sprintf("accepted: %s\n", g.FunctionName)
	if verr := compiler.Validate(g); verr != nil {
		result = ValidateResult{
			Function: g.FunctionName,
			Accepted: false,
			Code:     verr.Code,
			Field:    verr.Field,
			Message:  verr.Message,
		}
		text = fmt.Sprintf("rejected: %s\n", verr.Error())
	}

	if err := formatter.Emit(text, result); err != nil {
		return err
	}
	if !result.Accepted {
		return fmt.Errorf("graph rejected: [%s] %s", result.Code, result.Message)
	}
	return nil
}
