package azure

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/message"
	op "github.com/clampline/tenantctl/internal/output_providers"
	"github.com/clampline/tenantctl/modules"
	"github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/stages"
	"github.com/clampline/tenantctl/pkg/types"
)

// Summary collects tenant, subscription and resource-count details and
// renders them as markdown tables. Without --subscription it covers
// every subscription the session can reach; a subscription that fails
// is reported and skipped rather than aborting the rest.
type Summary struct {
	modules.BaseModule
	Session *helpers.Session

	// Summarize is swappable for tests; defaults to the ARM/Graph lookup.
	Summarize func(ctx context.Context, session *helpers.Session, subscriptionID string) (*helpers.TenantSummary, error)

	// List is swappable for tests; defaults to the ARM subscription pager.
	List func(ctx context.Context, session *helpers.Session) ([]helpers.SubscriptionSummary, error)
}

var SummaryMetadata = modules.Metadata{
	Id:          "summary",
	Name:        "Tenant Summary",
	Description: "Summarize tenant, subscription and resource details",
	Platform:    types.Azure,
	References: []string{
		"https://learn.microsoft.com/en-us/rest/api/resources/subscriptions",
	},
}

var SummaryOptions = []*types.Option{
	types.SetRequired(options.AzureSubscriptionOpt, false),
	&options.FileNameOpt,
}

var SummaryOutputProviders = types.OutputProviders{
	op.NewConsoleProvider,
	op.NewMarkdownFileProvider,
}

func NewSummary(session *helpers.Session, opts []*types.Option) *Summary {
	m := &Summary{
		Session:   session,
		Summarize: helpers.GetTenantSummary,
		List:      helpers.ListSubscriptions,
	}
	m.Metadata = SummaryMetadata
	m.Options = opts
	m.Run = modules.NewRun()
	m.ConfigureOutputProviders(SummaryOutputProviders)
	return m
}

func (m *Summary) Invoke() error {
	defer close(m.Run.Data)

	ctx := context.Background()

	targets, err := m.targetSubscriptions(ctx)
	if err != nil {
		return err
	}

	summarize := stages.Map(
		func(ctx context.Context, _ []*types.Option, subscriptionID string) (*helpers.TenantSummary, error) {
			return m.Summarize(ctx, m.Session, subscriptionID)
		},
		func(subscriptionID string, err error) {
			message.Warning("skipping subscription %s: %v", subscriptionID, err)
		},
	)

	emitted := 0
	for env := range summarize(ctx, m.Options, stages.Generator(targets)) {
		m.Run.Data <- m.MakeResult(summaryTable(env))
		emitted++
	}

	if emitted == 0 {
		return fmt.Errorf("no subscription could be summarized")
	}
	return nil
}

func (m *Summary) targetSubscriptions(ctx context.Context) ([]string, error) {
	if sub := options.Value(options.AzureSubscriptionOpt.Name, m.Options); sub != "" {
		return []string{sub}, nil
	}

	subs, err := m.List(ctx, m.Session)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	return ids, nil
}

func summaryTable(env *helpers.TenantSummary) types.MarkdownTable {
	table := types.MarkdownTable{
		TableHeading: fmt.Sprintf("Tenant Summary: %s (%s), subscription %s (%s), state %s",
			env.TenantName, env.TenantID, env.SubscriptionName, env.SubscriptionID, env.State),
		Headers: []string{"Resource Type", "Count"},
	}
	for _, rc := range env.Resources {
		table.Rows = append(table.Rows, []string{rc.ResourceType, strconv.Itoa(rc.Count)})
	}
	return table
}
