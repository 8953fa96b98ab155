// Package cli implements the smauto command-line interface using Cobra.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smauto",
	Short: "smauto runs and validates SmAuto home/IoT automation models",
	Long: `smauto is the runtime for the SmAuto domain-specific language: a model
declares entities talking over MQTT/AMQP/Redis brokers and automations that
react to their state. This binary validates a model document and runs the
engine against it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}
