package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tapec/internal/compiler"
	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/graph"
	"github.com/roach88/tapec/internal/registry"
	"github.com/roach88/tapec/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Disasm bool   // print the generated-code listing
	DBPath string // provenance database path; empty disables recording
}

// CompileResult is the JSON payload of the compile command.
type CompileResult struct {
	Function   string `json:"function"`
	GraphHash  string `json:"graph_hash"`
	NumInputs  int    `json:"num_inputs"`
	NumOutputs int    `json:"num_outputs"`
	Operators  int    `json:"operators"`
	Status     string `json:"status"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Disasm     string `json:"disasm,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <graph.cue>",
		Short: "Compile a recorded graph into an invokable function",
		Long: `Compile a recorded operation graph into an invokable function.

The graph is validated against the supported operator subset, lowered
one operator at a time, and the generated function is verified before
it is considered usable. The diagnostic is empty on success.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Disasm, "disasm", false, "print the generated-code listing")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record compile provenance to this SQLite database")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("loaded graph %q: %d input(s), %d operator(s), %d output(s)",
		g.FunctionName, g.NumInputs(), len(g.Operators), len(g.Dependents))

	hash := graph.Hash(g)
	c := compiler.New(registry.New())
	msg := c.FromGraph(g)

	if opts.DBPath != "" {
		if err := recordProvenance(opts.DBPath, g.FunctionName, hash, msg); err != nil {
			return err
		}
	}

	result := CompileResult{
		Function:   g.FunctionName,
		GraphHash:  hash,
		NumInputs:  g.NumInputs(),
		NumOutputs: len(g.Dependents),
		Operators:  len(g.Operators),
		Status:     store.StatusOK,
		Diagnostic: msg,
	}
	if msg != "" {
		result.Status = store.StatusError
	} else if opts.Disasm {
		result.Disasm = emit.Disassemble(c.Module())
	}

	if err := formatter.Emit(compileText(&result), result); err != nil {
		return err
	}
	if msg != "" {
		return fmt.Errorf("compilation failed: %s", msg)
	}
	return nil
}

// recordProvenance appends one compile record to the provenance log.
func recordProvenance(dbPath, functionName, hash, diagnostic string) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Append(context.Background(), functionName, hash, diagnostic)
	if err != nil {
		return err
	}
	slog.Debug("compile recorded", "id", rec.ID, "seq", rec.Seq, "status", rec.Status)
	return nil
}

// compileText renders the text-mode output.
func compileText(r *CompileResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function:   %s\n", r.Function)
	fmt.Fprintf(&sb, "graph hash: %s\n", r.GraphHash)
	fmt.Fprintf(&sb, "inputs:     %d\n", r.NumInputs)
	fmt.Fprintf(&sb, "outputs:    %d\n", r.NumOutputs)
	fmt.Fprintf(&sb, "operators:  %d\n", r.Operators)
	fmt.Fprintf(&sb, "status:     %s\n", r.Status)
	if r.Diagnostic != "" {
		fmt.Fprintf(&sb, "diagnostic: %s\n", r.Diagnostic)
	}
	if r.Disasm != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Disasm)
	}
	return sb.String()
}
