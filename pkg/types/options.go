package types

import (
	"regexp"
)

type OptionType string

const (
	String OptionType = "string"
	Bool   OptionType = "bool"
	Int    OptionType = "int"
)

// Option is one named CLI parameter of a module. Options are declared
// as package vars, copied per invocation, bound to cobra flags and
// validated before a module runs.
type Option struct {
	Name        string
	Short       string
	Description string
	Default     string
	Required    bool
	Type        OptionType
	Value       string
	ValueFormat *regexp.Regexp
	ValueList   []string
	Sensitive   bool
}

// SetRequired returns a copy of the option with Required overridden.
func SetRequired(option Option, required bool) *Option {
	option.Required = required
	return &option
}

// SetDefaultValue returns a copy of the option with Value overridden.
func SetDefaultValue(option Option, value string) *Option {
	option.Value = value
	return &option
}

// GetOptionByName finds an option by name, nil when absent.
func GetOptionByName(name string, options []*Option) *Option {
	for _, option := range options {
		if option.Name == name {
			return option
		}
	}
	return nil
}
