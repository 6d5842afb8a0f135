package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clampline/tenantctl/modules/compliance"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Microsoft Purview compliance search operations",
}

var complianceRunCmd = &cobra.Command{
	Use:   "run",
	Short: compliance.SearchExportMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := compliance.NewSearchExport(mustSession(), getOpts(cmd, compliance.SearchExportOptions))
		runModule(module, module.Run)
	},
}

var complianceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: compliance.JobStatusMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := compliance.NewJobStatus(mustSession(), getOpts(cmd, compliance.JobStatusOptions))
		runModule(module, module.Run)
	},
}

func init() {
	rootCmd.AddCommand(complianceCmd)

	options2Flag(compliance.SearchExportOptions, nil, complianceRunCmd)
	complianceCmd.AddCommand(complianceRunCmd)

	options2Flag(compliance.JobStatusOptions, nil, complianceStatusCmd)
	complianceCmd.AddCommand(complianceStatusCmd)
}
