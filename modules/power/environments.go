// Package power holds the Power Platform admin modules: environment
// enumeration and the per-environment operation loop.
package power

import (
	"context"

	"github.com/clampline/tenantctl/internal/helpers"
	op "github.com/clampline/tenantctl/internal/output_providers"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	powersdk "github.com/clampline/tenantctl/pkg/power"
	"github.com/clampline/tenantctl/pkg/types"
)

type Environments struct {
	modules.BaseModule
	Session *helpers.Session

	Client environmentLister
}

type environmentLister interface {
	ListEnvironments(ctx context.Context) ([]powersdk.Environment, error)
}

var EnvironmentsMetadata = modules.Metadata{
	Id:          "environments",
	Name:        "Power Platform Environments",
	Description: "List all Power Platform environments in the tenant",
	Platform:    types.Power,
	References: []string{
		"https://learn.microsoft.com/en-us/power-platform/admin/environments-overview",
	},
}

var EnvironmentsOptions = []*types.Option{
	types.SetDefaultValue(options.FileNameOpt, "environments.csv"),
}

var EnvironmentsOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewCsvFileProvider,
}

func NewEnvironments(session *helpers.Session, opts []*types.Option) *Environments {
	m := &Environments{Session: session}
	m.Metadata = EnvironmentsMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	m.ConfigureOutputProviders(EnvironmentsOutputProviders)
	return m
}

func (m *Environments) Invoke() error {
	defer close(m.Run.Data)

	client := m.Client
	if client == nil {
		client = powersdk.NewClient(m.Session.Credential)
	}

	envs, err := client.ListEnvironments(context.Background())
	if err != nil {
		return err
	}

	m.Run.Data <- m.MakeResult(environmentTable(envs))
	return nil
}

func environmentTable(envs []powersdk.Environment) types.DelimitedTable {
	table := types.DelimitedTable{
		Headers: []string{"Name", "Display Name", "Location", "Type", "State"},
	}
	for _, env := range envs {
		table.Rows = append(table.Rows, []string{env.Name, env.DisplayName, env.Location, env.Type, env.State})
	}
	return table
}
