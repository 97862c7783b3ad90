package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-amortization-go/internal/tracing"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показывает версию",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "amortization %s\n", tracing.ServiceVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
