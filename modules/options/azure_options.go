package options

import (
	"regexp"

	"github.com/clampline/tenantctl/pkg/types"
)

var AzureSubscriptionOpt = types.Option{
	Name:        "subscription",
	Short:       "s",
	Description: "Azure subscription ID",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueFormat: regexp.MustCompile("^[0-9A-Fa-f]{8}-([0-9A-Fa-f]{4}-){3}[0-9A-Fa-f]{12}$"),
}

var AzureFromOpt = types.Option{
	Name:        "from",
	Description: "report period start date (YYYY-MM-DD)",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueFormat: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
}

var AzureToOpt = types.Option{
	Name:        "to",
	Description: "report period end date (YYYY-MM-DD)",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueFormat: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
}

var AzureResourceGroupsOpt = types.Option{
	Name:        "resource-groups",
	Short:       "g",
	Description: "comma-separated resource groups to include (case-insensitive); empty means all",
	Required:    false,
	Type:        types.String,
	Value:       "",
}
