package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clampline/tenantctl/modules/azure"
	"github.com/clampline/tenantctl/modules/cost"
)

var azureCmd = &cobra.Command{
	Use:   "azure",
	Short: "Azure subscription and cost operations",
}

var azureSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: azure.SummaryMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := azure.NewSummary(mustSession(), getOpts(cmd, azure.SummaryOptions))
		runModule(module, module.Run)
	},
}

var azureCostReportCmd = &cobra.Command{
	Use:   "cost-report",
	Short: cost.ReportMetadata.Description,
	Run: func(cmd *cobra.Command, args []string) {
		module := cost.NewReport(mustSession(), getOpts(cmd, cost.ReportOptions))
		runModule(module, module.Run)
	},
}

func init() {
	rootCmd.AddCommand(azureCmd)

	options2Flag(azure.SummaryOptions, nil, azureSummaryCmd)
	azureCmd.AddCommand(azureSummaryCmd)

	options2Flag(cost.ReportOptions, nil, azureCostReportCmd)
	azureCmd.AddCommand(azureCostReportCmd)
}
