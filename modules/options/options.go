package options

import (
	"errors"
	"strconv"
	"strings"

	"github.com/clampline/tenantctl/pkg/types"
)

// CreateDeepCopyOfOptions copies option declarations so a command
// invocation never mutates the package-level defaults.
func CreateDeepCopyOfOptions(original []*types.Option) []*types.Option {
	copiedOptions := make([]*types.Option, len(original))

	for i, option := range original {
		newOption := *option
		copiedOptions[i] = &newOption
	}

	return copiedOptions
}

// ValidateOption ensures the provided option is in the list of options and valid.
// It checks if the option is required and has a valid format.
// If any validation fails, it returns an error.
func ValidateOption(opt types.Option, options []*types.Option) error {
	for _, option := range options {
		if option.Name != opt.Name {
			continue
		}

		// Not required and empty
		if !opt.Required && option.Value == "" {
			return nil
		}

		// Required and empty
		if opt.Required && option.Value == "" {
			return errors.New(option.Name + " is required")
		}

		if opt.ValueFormat != nil && !opt.ValueFormat.MatchString(option.Value) {
			return errors.New(option.Name + " is an invalid format")
		}

		if opt.ValueList != nil {
			for _, value := range opt.ValueList {
				if strings.EqualFold(value, option.Value) {
					return nil
				}
			}
			return errors.New(option.Name + " is not a valid option. Valid options are: " + strings.Join(opt.ValueList, ", "))
		}

		switch opt.Type {
		case types.Bool:
			_, err := strconv.ParseBool(option.Value)
			return err
		case types.Int:
			_, err := strconv.Atoi(option.Value)
			return err
		}
	}

	return nil
}

func ValidateOptions(opts []*types.Option, required []*types.Option) error {
	for _, opt := range required {
		err := ValidateOption(*opt, opts)
		if err != nil {
			return err
		}
	}
	return nil
}

// Bool reads a boolean option value, false when absent or malformed.
func Bool(name string, opts []*types.Option) bool {
	opt := types.GetOptionByName(name, opts)
	if opt == nil {
		return false
	}
	v, _ := strconv.ParseBool(opt.Value)
	return v
}

// Int reads an integer option value, returning fallback when absent or
// malformed.
func Int(name string, opts []*types.Option, fallback int) int {
	opt := types.GetOptionByName(name, opts)
	if opt == nil {
		return fallback
	}
	v, err := strconv.Atoi(opt.Value)
	if err != nil {
		return fallback
	}
	return v
}

// Value reads a string option value, empty when absent.
func Value(name string, opts []*types.Option) string {
	opt := types.GetOptionByName(name, opts)
	if opt == nil {
		return ""
	}
	return opt.Value
}

// CSV reads a comma-separated option as a trimmed slice, nil when the
// option is absent or empty.
func CSV(name string, opts []*types.Option) []string {
	raw := Value(name, opts)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
