package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version set by -ldflags at build time
var Version = "dev"

// VersionCmd print version
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version",
	Args:  NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(VersionCmd)
}
