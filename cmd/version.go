package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clampline/tenantctl/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of tenantctl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
