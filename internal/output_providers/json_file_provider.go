package outputproviders

import (
	"fmt"
	"log/slog"
	"os"

	o "github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/types"
)

type JsonFileProvider struct {
	OutputPath string
	FileName   string
}

func NewJsonFileProvider(options []*types.Option) types.OutputProvider {
	return &JsonFileProvider{
		OutputPath: o.Value(o.OutputOpt.Name, options),
		FileName:   o.Value(o.FileNameOpt.Name, options),
	}
}

func (fp *JsonFileProvider) Write(result types.Result) error {
	filename := result.Filename
	if filename == "" {
		filename = fp.FileName
	}
	if filename == "" {
		filename = TimestampedName(result.Module, "json")
	}

	fullpath := GetFullPath(filename, fp.OutputPath)
	if err := EnsureDir(fullpath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(fullpath, result.Json(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullpath, err)
	}

	slog.Info("output written", "path", fullpath)
	return nil
}
