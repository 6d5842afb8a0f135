package outputproviders

import (
	"fmt"
	"log/slog"
	"os"

	o "github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/types"
)

type MarkdownFileProvider struct {
	OutputPath string
	FileName   string
}

func NewMarkdownFileProvider(options []*types.Option) types.OutputProvider {
	return &MarkdownFileProvider{
		OutputPath: o.Value(o.OutputOpt.Name, options),
		FileName:   o.Value(o.FileNameOpt.Name, options),
	}
}

func (fp *MarkdownFileProvider) Write(result types.Result) error {
	// Result.Data needs to be of type MarkdownTable for this provider to work
	table, ok := result.Data.(types.MarkdownTable)
	if !ok {
		return fmt.Errorf("incoming result 'Data' not of type MarkdownTable instead received %T", result.Data)
	}

	filename := result.Filename
	if filename == "" {
		filename = fp.FileName
	}
	if filename == "" {
		filename = TimestampedName(result.Module, "md")
	}

	fullpath := GetFullPath(filename, fp.OutputPath)
	if err := EnsureDir(fullpath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(fullpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(table.ToString()); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullpath, err)
	}

	slog.Info("output written", "path", fullpath)
	return nil
}
