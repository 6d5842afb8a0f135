package outputproviders

import (
	"fmt"

	"github.com/clampline/tenantctl/pkg/types"
)

type ConsoleProvider struct{}

func NewConsoleProvider(options []*types.Option) types.OutputProvider {
	return &ConsoleProvider{}
}

// Write prints the result's data to the console.
func (cp *ConsoleProvider) Write(result types.Result) error {
	fmt.Println(result.String())
	return nil
}
