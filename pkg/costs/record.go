package costs

import "time"

// Record is one row of a usage/cost query: the spend attributed to a
// (date, resource group, service) triple. Currency is assumed uniform
// across a report run; no conversion is performed.
type Record struct {
	Date          time.Time
	ResourceGroup string
	Service       string
	Cost          float64
	Currency      string
}

// KeyFunc selects the grouping key of a record for aggregation.
type KeyFunc func(Record) string

// ByResourceGroup groups records by their resource group.
func ByResourceGroup(r Record) string { return r.ResourceGroup }

// ByService groups records by the consumed service or meter category.
func ByService(r Record) string { return r.Service }

// ByDate groups records into daily buckets.
func ByDate(r Record) string { return r.Date.Format("2006-01-02") }
