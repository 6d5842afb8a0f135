package modules

import (
	"github.com/clampline/tenantctl/pkg/types"
)

type Metadata struct {
	Id          string
	Name        string
	Description string
	Platform    types.Platform
	References  []string
}

// Module is one administrative operation: it authenticates, performs
// its remote calls and emits Results on its Run channel. Invoke blocks
// until the operation finishes.
type Module interface {
	Invoke() error
	GetOutputProviders() []types.OutputProvider
}

type Run struct {
	Data chan types.Result
}

func NewRun() Run {
	return Run{Data: make(chan types.Result, 1)}
}

type BaseModule struct {
	Metadata
	Options         []*types.Option
	OutputProviders []types.OutputProvider
	Run             Run
}

func (m *BaseModule) GetOptionByName(name string) *types.Option {
	return types.GetOptionByName(name, m.Options)
}

func (m *BaseModule) MakeResult(data any, opts ...types.ResultOption) types.Result {
	return types.NewResult(m.Platform, m.Name, data, opts...)
}

func (m *BaseModule) GetOutputProviders() []types.OutputProvider {
	return m.OutputProviders
}

func (m *BaseModule) ConfigureOutputProviders(providers types.OutputProviders) {
	for _, p := range providers {
		m.OutputProviders = append(m.OutputProviders, p(m.Options))
	}
}
