package types

import "encoding/json"

type Platform string

const (
	Azure Platform = "azure"
	Entra Platform = "entra"
	M365  Platform = "m365"
	Power Platform = "power"
)

// Result is one unit of module output handed to the output providers.
type Result struct {
	Platform Platform `json:"platform"`
	Module   string   `json:"module"`
	Filename string   `json:"-"`
	Data     any      `json:"data"`
}

type ResultOption func(*Result)

func NewResult(platform Platform, module string, data any, opts ...ResultOption) Result {
	r := &Result{
		Platform: platform,
		Module:   module,
		Data:     data,
	}

	for _, opt := range opts {
		opt(r)
	}
	return *r
}

func WithFilename(filename string) ResultOption {
	return func(r *Result) {
		r.Filename = filename
	}
}

func (r *Result) String() string {
	if s, ok := r.Data.(string); ok {
		return s
	}
	d, _ := json.MarshalIndent(r.Data, "", "  ")
	return string(d)
}

func (r *Result) Json() []byte {
	d, _ := json.Marshal(r)
	return d
}
