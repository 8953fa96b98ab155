package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smauto-dev/engine/domain/model"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate MODEL.yaml",
	Short: "Load a model document and report whether it is well-formed",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := model.Load(args[0])
	if err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d broker(s), %d entit(y/ies), %d automation(s)\n",
		len(m.Brokers), len(m.Entities), len(m.Automations))
	return nil
}
