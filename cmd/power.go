package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clampline/tenantctl/modules/power"
)

var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Power Platform environment operations",
}

var powerEnvironmentsCmd = &cobra.Command{
	Use:   "environments",
	Short: power.EnvironmentsMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := power.NewEnvironments(mustSession(), getOpts(cmd, power.EnvironmentsOptions))
		runModule(module, module.Run)
	},
}

var powerApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: power.ApplyMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := power.NewApply(mustSession(), getOpts(cmd, power.ApplyOptions))
		runModule(module, module.Run)
	},
}

func init() {
	rootCmd.AddCommand(powerCmd)

	options2Flag(power.EnvironmentsOptions, nil, powerEnvironmentsCmd)
	powerCmd.AddCommand(powerEnvironmentsCmd)

	options2Flag(power.ApplyOptions, nil, powerApplyCmd)
	powerCmd.AddCommand(powerApplyCmd)
}
