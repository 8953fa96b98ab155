package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graph, gen, and genv mirror the upstream SmAuto toolchain's commands for
// rendering a model's automation dependency graph and scaffolding new
// entity/model files. Neither is part of the runtime engine's scope here;
// both are left as named stubs so `smauto --help` documents the full
// upstream command surface without silently dropping a command a model
// author might expect.

func init() {
	rootCmd.AddCommand(graphCmd, genCmd, genvCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph MODEL.yaml",
	Short: "Render a model's automation dependency graph (not implemented here)",
	Args:  cobra.ExactArgs(1),
	RunE:  notImplemented("graph"),
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new model document (not implemented here)",
	RunE:  notImplemented("gen"),
}

var genvCmd = &cobra.Command{
	Use:   "genv",
	Short: "Scaffold a new entity/attribute definition (not implemented here)",
	RunE:  notImplemented("genv"),
}

func notImplemented(name string) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return fmt.Errorf("%s: not implemented by the runtime engine; see the SmAuto authoring toolchain", name)
	}
}
