// Copyright 2025 The Electricity-Theft-Detection Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"time"
)

// RiskLevel classifies how suspicious a comparison or customer is
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// rank orders risk levels for severity comparison (Low < Medium < High)
func (r RiskLevel) rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// maxRisk returns the more severe of two risk levels
func maxRisk(a, b RiskLevel) RiskLevel {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// RawTable represents one uploaded table before normalization: a header row
// plus string cells, exactly as read from the source file
type RawTable struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of a named column, or -1 if absent
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// UsageRecord represents one customer's meter reading for one billing month
type UsageRecord struct {
	CustomerID    string    `json:"customer_id"`
	Month         string    `json:"month"` // Canonical YYYY-MM
	MonthDate     time.Time `json:"-"`     // First day of the month, UTC
	UnitsConsumed float64   `json:"units_consumed"` // kWh
	PeakLoadKW    float64   `json:"peak_load_kw"`
	IsAnomaly     *bool     `json:"is_anomaly,omitempty"` // Upstream label, informational only
}

// CustomerSeries holds one customer's records sorted ascending by month
type CustomerSeries struct {
	CustomerID string        `json:"customer_id"`
	Records    []UsageRecord `json:"records"`
}

// LatestRecord returns the earliest-positioned record carrying the maximum
// month of the series, and false for an empty series
func (s *CustomerSeries) LatestRecord() (UsageRecord, bool) {
	if len(s.Records) == 0 {
		return UsageRecord{}, false
	}
	max := s.Records[len(s.Records)-1].MonthDate
	for _, rec := range s.Records {
		if rec.MonthDate.Equal(max) {
			return rec, true
		}
	}
	return s.Records[len(s.Records)-1], true
}

// Dataset represents the unified time-ordered view over all accepted tables:
// customer groups sorted by ID, each group sorted ascending by month
type Dataset struct {
	Customers []CustomerSeries `json:"customers"`
}

// IsEmpty reports whether the dataset holds no records at all
func (d *Dataset) IsEmpty() bool {
	for _, c := range d.Customers {
		if len(c.Records) > 0 {
			return false
		}
	}
	return true
}

// TotalRecords counts usage records across all customers
func (d *Dataset) TotalRecords() int {
	total := 0
	for _, c := range d.Customers {
		total += len(c.Records)
	}
	return total
}

// UniqueMonths counts distinct billing months across the whole dataset
func (d *Dataset) UniqueMonths() int {
	months := make(map[string]struct{})
	for _, c := range d.Customers {
		for _, rec := range c.Records {
			months[rec.Month] = struct{}{}
		}
	}
	return len(months)
}

// Customer returns the series for one customer ID
func (d *Dataset) Customer(id string) (CustomerSeries, bool) {
	for _, c := range d.Customers {
		if c.CustomerID == id {
			return c, true
		}
	}
	return CustomerSeries{}, false
}

// ChangeRecord represents the comparison of two chronologically adjacent
// months within one customer's series, annotated with the rule verdict
type ChangeRecord struct {
	CustomerID        string    `json:"customer_id"`
	PrevMonth         string    `json:"prev_month"`
	CurrentMonth      string    `json:"current_month"`
	PrevUnits         float64   `json:"prev_units"`
	CurrentUnits      float64   `json:"current_units"`
	UnitsChange       float64   `json:"units_change"`
	UnitsChangePct    float64   `json:"units_change_pct"`
	PrevPeakLoad      float64   `json:"prev_peak_load"`
	CurrentPeakLoad   float64   `json:"current_peak_load"`
	PeakLoadChange    float64   `json:"peak_load_change"`
	PeakLoadChangePct float64   `json:"peak_load_change_pct"`
	IsSuspicious      bool      `json:"is_suspicious"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Reasons           []string  `json:"reasons"`
}

// CustomerSummary represents the aggregate risk profile for one customer
// with at least one month-to-month comparison
type CustomerSummary struct {
	CustomerID         string    `json:"customer_id"`
	TotalMonths        int       `json:"total_months"`
	AvgUnits           float64   `json:"avg_units"`
	AvgPeakLoad        float64   `json:"avg_peak_load"`
	UnitsVolatility    float64   `json:"units_volatility"`    // Sample standard deviation
	PeakLoadVolatility float64   `json:"peak_load_volatility"` // Sample standard deviation
	SuspiciousPeriods  int       `json:"suspicious_periods"`
	TotalComparisons   int       `json:"total_comparisons"`
	OverallRisk        RiskLevel `json:"overall_risk"`
	LatestMonth        string    `json:"latest_month"`
	LatestUnits        float64   `json:"latest_units"`
	LatestPeakLoad     float64   `json:"latest_peak_load"`
}

// TableRejection records a table excluded from the merge and why
type TableRejection struct {
	Table  string `json:"table"`
	Reason string `json:"reason"`
}

// DropStats counts rows discarded during normalization, by cause
type DropStats struct {
	MissingValues    int `json:"missing_values"`    // Non-numeric or empty required fields
	NegativeValues   int `json:"negative_values"`   // Units or peak load below zero
	UnparsableMonths int `json:"unparsable_months"` // Month matched no known layout
	Duplicates       int `json:"duplicates"`        // Removed by keep-first/keep-last policy
}

// Total returns the number of rows dropped across all causes
func (d DropStats) Total() int {
	return d.MissingValues + d.NegativeValues + d.UnparsableMonths + d.Duplicates
}

// add accumulates another table's drop counters
func (d *DropStats) add(other DropStats) {
	d.MissingValues += other.MissingValues
	d.NegativeValues += other.NegativeValues
	d.UnparsableMonths += other.UnparsableMonths
	d.Duplicates += other.Duplicates
}

// NormalizedData holds the normalizer's full output: the merged dataset plus
// the per-table acceptance report
type NormalizedData struct {
	Dataset        Dataset          `json:"dataset"`
	TablesAccepted int              `json:"tables_accepted"`
	TablesRejected []TableRejection `json:"tables_rejected"`
	RowsDropped    DropStats        `json:"rows_dropped"`
}

// RunState distinguishes the three outcomes a reporting layer must be able
// to tell apart
type RunState string

const (
	StateNoData        RunState = "no_data"        // No tables were supplied at all
	StateNothingUsable RunState = "nothing_usable" // Tables supplied but no usable rows survived
	StateAnalyzed      RunState = "analyzed"       // Analysis produced results
)

// RunSummary represents the executive view over one analysis run
type RunSummary struct {
	FilesLoaded           int     `json:"files_loaded"`
	FilesRejected         int     `json:"files_rejected"`
	TotalRecords          int     `json:"total_records"`
	TotalCustomers        int     `json:"total_customers"`
	CustomersAnalyzed     int     `json:"customers_analyzed"`
	UniqueMonths          int     `json:"unique_months"`
	HighRiskCustomers     int     `json:"high_risk_customers"`
	MediumRiskCustomers   int     `json:"medium_risk_customers"`
	LowRiskCustomers      int     `json:"low_risk_customers"`
	SuspiciousComparisons int     `json:"suspicious_comparisons"`
	TotalComparisons      int     `json:"total_comparisons"`
	SuspiciousRate        float64 `json:"suspicious_rate"` // Percent of comparisons flagged
}

// Thresholds holds the effective detection settings for a run, embedded in
// the result so exports and reports are self-describing
type Thresholds struct {
	PeakLoadDropPct float64 `json:"peak_load_drop_threshold_pct"`
	UnitsDropPct    float64 `json:"units_drop_threshold_pct"`
	MinUnits        float64 `json:"min_units_threshold"`
	CombinedDropPct float64 `json:"combined_drop_threshold_pct"`
	HighUsageFloor  float64 `json:"high_usage_floor"`
	LowPeakFloor    float64 `json:"low_peak_floor"`
	HighRiskRatio   float64 `json:"high_risk_ratio"`
	MediumRiskRatio float64 `json:"medium_risk_ratio"`
	DuplicatePolicy string  `json:"duplicate_policy"`
}

// AnalysisResult holds the complete output of one pipeline run. A new run
// replaces it wholesale; it is never mutated in place.
type AnalysisResult struct {
	RunID          string            `json:"run_id"`
	GeneratedAt    time.Time         `json:"generated_at"`
	State          RunState          `json:"state"`
	Thresholds     Thresholds        `json:"thresholds"`
	Dataset        Dataset           `json:"dataset"`
	ChangeRecords  []ChangeRecord    `json:"change_records"`
	Summaries      []CustomerSummary `json:"customer_summaries"`
	Summary        RunSummary        `json:"run_summary"`
	TablesRejected []TableRejection  `json:"tables_rejected"`
	RowsDropped    DropStats         `json:"rows_dropped"`
}

// SummaryFor returns the summary row for one customer, if it was analyzed
func (r *AnalysisResult) SummaryFor(customerID string) (CustomerSummary, bool) {
	for _, s := range r.Summaries {
		if s.CustomerID == customerID {
			return s, true
		}
	}
	return CustomerSummary{}, false
}

// ChangesFor returns the change records for one customer, in month order
func (r *AnalysisResult) ChangesFor(customerID string) []ChangeRecord {
	var out []ChangeRecord
	for _, cr := range r.ChangeRecords {
		if cr.CustomerID == customerID {
			out = append(out, cr)
		}
	}
	return out
}
