package costs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
)

// Fetcher runs cost management usage queries for one subscription.
type Fetcher struct {
	client *armcostmanagement.QueryClient
	scope  string
}

// NewFetcher builds a fetcher scoped to the given subscription.
func NewFetcher(cred azcore.TokenCredential, subscriptionID string) (*Fetcher, error) {
	client, err := armcostmanagement.NewQueryClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}
	return &Fetcher{
		client: client,
		scope:  fmt.Sprintf("/subscriptions/%s", subscriptionID),
	}, nil
}

// Fetch retrieves daily actual costs between from and to (inclusive),
// grouped by resource group and service name, as a flat record list.
func (f *Fetcher) Fetch(ctx context.Context, from, until time.Time) ([]Record, error) {
	definition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(from),
			To:   to.Ptr(until),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr("ResourceGroupName"),
				},
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr("ServiceName"),
				},
			},
		},
	}

	resp, err := f.client.Usage(ctx, f.scope, definition, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs for %s: %w", f.scope, err)
	}
	if resp.Properties == nil {
		return nil, fmt.Errorf("cost query for %s returned no properties", f.scope)
	}

	return parseQueryResult(resp.Properties.Columns, resp.Properties.Rows)
}

// parseQueryResult converts the positional row format of the cost API
// into Records, locating fields by column name rather than index.
func parseQueryResult(columns []*armcostmanagement.QueryColumn, rows [][]any) ([]Record, error) {
	idx := map[string]int{}
	for i, c := range columns {
		if c != nil && c.Name != nil {
			idx[strings.ToLower(*c.Name)] = i
		}
	}

	required := []string{"cost", "resourcegroupname", "servicename", "usagedate", "currency"}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("cost query result missing column %q", name)
		}
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < len(columns) {
			return nil, fmt.Errorf("row %d: has %d values for %d columns", i, len(row), len(columns))
		}

		cost, ok := row[idx["cost"]].(float64)
		if !ok {
			return nil, fmt.Errorf("row %d: cost is not numeric", i)
		}

		date, err := parseUsageDate(row[idx["usagedate"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		records = append(records, Record{
			Date:          date,
			ResourceGroup: stringCell(row[idx["resourcegroupname"]]),
			Service:       stringCell(row[idx["servicename"]]),
			Cost:          cost,
			Currency:      stringCell(row[idx["currency"]]),
		})
	}
	return records, nil
}

// parseUsageDate handles the two shapes the API uses: a numeric
// yyyymmdd and an ISO timestamp string.
func parseUsageDate(cell any) (time.Time, error) {
	switch v := cell.(type) {
	case float64:
		return time.Parse("20060102", fmt.Sprintf("%08.0f", v))
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		return time.Parse("20060102", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported usage date value %v (%T)", cell, cell)
	}
}

func stringCell(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", cell)
}
