package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tapec/internal/graph"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Function   string   `json:"function"`
	GraphHash  string   `json:"graph_hash"`
	NDynamic   int      `json:"n_dynamic"`
	NVariable  int      `json:"n_variable"`
	Constants  int      `json:"constants"`
	NumNodes   int      `json:"num_nodes"`
	Operators  []string `json:"operators"`
	Dependents []int    `json:"dependents"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "inspect <graph.cue>",
		Short:         "Print a recorded graph's node space and operator stream",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
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

	result := InspectResult{
		Function:  g.FunctionName,
		GraphHash: graph.Hash(g),
		NDynamic:  g.NDynamic,
		NVariable: g.NVariable,
		Constants: len(g.Constants),
		NumNodes:  g.NumNodes(),
	}
	// Render each operator with its assigned result identity, walking
	// the identity space the way the compiler will.
	next := g.FirstResult()
	for _, op := range g.Operators {
		args := make([]string, len(op.Args))
		for i, a := range op.Args {
			args[i] = fmt.Sprintf("%d", a)
		}
		result.Operators = append(result.Operators,
			fmt.Sprintf("%d = %s(%s)", next, op.Kind, strings.Join(args, ", ")))
		next += graph.NodeID(op.NResult)
	}
	for _, d := range g.Dependents {
		result.Dependents = append(result.Dependents, int(d))
	}

	return formatter.Emit(inspectText(&result), result)
}

// inspectText renders the text-mode output.
func inspectText(r *InspectResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function:   %s\n", r.Function)
	fmt.Fprintf(&sb, "graph hash: %s\n", r.GraphHash)
	fmt.Fprintf(&sb, "nodes:      %d (%d dynamic, %d variable, %d constant)\n",
		r.NumNodes, r.NDynamic, r.NVariable, r.Constants)
	for _, op := range r.Operators {
		fmt.Fprintf(&sb, "  %s\n", op)
	}
	deps := make([]string, len(r.Dependents))
	for i, d := range r.Dependents {
		deps[i] = fmt.Sprintf("%d", d)
	}
	fmt.Fprintf(&sb, "dependents: [%s]\n", strings.Join(deps, ", "))
	return sb.String()
}
