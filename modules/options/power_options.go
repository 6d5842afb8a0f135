package options

import "github.com/clampline/tenantctl/pkg/types"

var PowerEnvironmentOpt = types.Option{
	Name:        "environment",
	Description: "Power Platform environment name; required unless --all-environments is set",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var PowerAllEnvironmentsOpt = types.Option{
	Name:        "all-environments",
	Short:       "a",
	Description: "apply the operation to every environment in the tenant",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}

var PowerOperationOpt = types.Option{
	Name:        "operation",
	Description: "per-environment operation to apply",
	Required:    true,
	Type:        types.String,
	Value:       "",
	ValueList:   []string{"enable-managed", "disable-sharing", "tag"},
}

var PowerWorkerCountOpt = types.Option{
	Name:        "workers",
	Short:       "w",
	Description: "number of concurrent workers for per-environment requests",
	Required:    false,
	Type:        types.Int,
	Value:       "1",
}
