package outputproviders

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	o "github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/types"
)

type CsvFileProvider struct {
	OutputPath string
	FileName   string
}

func NewCsvFileProvider(options []*types.Option) types.OutputProvider {
	return &CsvFileProvider{
		OutputPath: o.Value(o.OutputOpt.Name, options),
		FileName:   o.Value(o.FileNameOpt.Name, options),
	}
}

func (fp *CsvFileProvider) Write(result types.Result) error {
	table, ok := result.Data.(types.DelimitedTable)
	if !ok {
		return fmt.Errorf("incoming result 'Data' not of type DelimitedTable instead received %T", result.Data)
	}

	filename := result.Filename
	if filename == "" {
		filename = fp.FileName
	}
	if filename == "" {
		filename = TimestampedName(result.Module, "csv")
	}

	fullpath := GetFullPath(filename, fp.OutputPath)
	if err := EnsureDir(fullpath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullpath, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullpath, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	slog.Info("output written", "path", fullpath)
	return nil
}
