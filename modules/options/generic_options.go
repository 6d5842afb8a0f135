package options

import "github.com/clampline/tenantctl/pkg/types"

var OutputOpt = types.Option{
	Name:        "output",
	Short:       "o",
	Description: "output directory",
	Required:    false,
	Type:        types.String,
	Value:       "output",
}

var FileNameOpt = types.Option{
	Name:        "filename",
	Description: "name of the output file",
	Required:    false,
	Type:        types.String,
	Value:       "",
}

var ExportOpt = types.Option{
	Name:        "export",
	Short:       "e",
	Description: "export results to a file without prompting",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}

var YesOpt = types.Option{
	Name:        "yes",
	Short:       "y",
	Description: "assume yes for all prompts (headless mode)",
	Required:    false,
	Type:        types.Bool,
	Value:       "false",
}

var PollIntervalOpt = types.Option{
	Name:        "poll-interval",
	Description: "seconds between job status checks",
	Required:    false,
	Type:        types.Int,
	Value:       "10",
}

var MaxAttemptsOpt = types.Option{
	Name:        "max-attempts",
	Description: "maximum number of job status checks before giving up",
	Required:    true,
	Type:        types.Int,
	Value:       "180",
}
