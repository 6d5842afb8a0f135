package options

import "github.com/clampline/tenantctl/pkg/types"

var ComplianceSearchNameOpt = types.Option{
	Name:        "search-name",
	Short:       "n",
	Description: "name of the compliance search; generated when empty",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var ComplianceQueryOpt = types.Option{
	Name:        "query",
	Short:       "q",
	Description: "KQL content query for the compliance search",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var ComplianceLocationsOpt = types.Option{
	Name:        "locations",
	Short:       "l",
	Description: "comma-separated content locations (mailboxes, sites); 'All' for org-wide",
	Required:    false,
	Type:        types.String,
	Value:       "All",
}

var ComplianceJobIDOpt = types.Option{
	Name:        "job-id",
	Short:       "j",
	Description: "identifier of an existing search or export job",
	Required:    true,
	Type:        types.String,
	Value:       "",
}

var ComplianceExportFormatOpt = types.Option{
	Name:        "format",
	Description: "export format for the dependent export job",
	Required:    false,
	Type:        types.String,
	Value:       "Fxstream",
	ValueList:   []string{"Fxstream", "Mime", "Msg"},
}
