// Copyright 2025 The Electricity-Theft-Detection Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalizer turns raw tables into the unified dataset. Tables missing
// required columns are rejected whole; individual bad rows are dropped
// and counted.
type Normalizer struct {
	config *Config
	logger *Logger
}

// NewNormalizer creates a new record normalizer
func NewNormalizer(config *Config, logger *Logger) *Normalizer {
	return &Normalizer{
		config: config,
		logger: logger.WithComponent("normalizer"),
	}
}

// Normalize validates, cleans and merges all tables into one dataset
func (n *Normalizer) Normalize(tables []RawTable) NormalizedData {
	n.logger.Info("Starting normalization", "tables", len(tables))

	result := NormalizedData{}
	var all []UsageRecord

	for i := range tables {
		table := &tables[i]
		records, stats, err := n.normalizeTable(table)
		if err != nil {
			n.logger.LogTableRejected(table.Name, err.Error())
			result.TablesRejected = append(result.TablesRejected, TableRejection{
				Table:  table.Name,
				Reason: err.Error(),
			})
			continue
		}

		n.logger.LogRowsDropped(table.Name, stats)
		result.TablesAccepted++
		result.RowsDropped.add(stats)
		all = append(all, records...)
	}

	deduped, duplicates := n.applyDuplicatePolicy(all)
	result.RowsDropped.Duplicates += duplicates
	result.Dataset = buildDataset(deduped)

	n.logger.Info("Normalization completed",
		"tables_accepted", result.TablesAccepted,
		"tables_rejected", len(result.TablesRejected),
		"records", result.Dataset.TotalRecords(),
		"customers", len(result.Dataset.Customers),
		"rows_dropped", result.RowsDropped.Total(),
	)

	return result
}

// pendingRow holds a value-cleaned row awaiting month parsing
type pendingRow struct {
	customerID string
	rawMonth   string
	units      float64
	peak       float64
	anomaly    *bool
}

// normalizeTable cleans one table. Value cleaning runs first; the strict
// month pass then inspects only the survivors, matching how an analyst
// would judge the column.
func (n *Normalizer) normalizeTable(t *RawTable) ([]UsageRecord, DropStats, error) {
	var missing []string
	for _, col := range requiredColumns {
		if t.ColumnIndex(col) == -1 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, DropStats{}, newMissingColumnsError(t.Name, missing)
	}

	idIdx := t.ColumnIndex(ColumnCustomerID)
	monthIdx := t.ColumnIndex(ColumnMonth)
	unitsIdx := t.ColumnIndex(ColumnUnitsConsumed)
	peakIdx := t.ColumnIndex(ColumnPeakLoadKW)
	anomalyIdx := t.ColumnIndex(ColumnIsAnomaly)

	widest := idIdx
	for _, idx := range []int{monthIdx, unitsIdx, peakIdx} {
		if idx > widest {
			widest = idx
		}
	}

	var stats DropStats
	var rows []pendingRow

	for _, row := range t.Rows {
		if len(row) <= widest {
			stats.MissingValues++
			continue
		}

		customerID := strings.TrimSpace(row[idIdx])
		rawMonth := strings.TrimSpace(row[monthIdx])
		if customerID == "" || rawMonth == "" {
			stats.MissingValues++
			continue
		}

		units, ok := parseNumeric(row[unitsIdx])
		if !ok {
			stats.MissingValues++
			continue
		}
		peak, ok := parseNumeric(row[peakIdx])
		if !ok {
			stats.MissingValues++
			continue
		}

		if units < 0 || peak < 0 {
			stats.NegativeValues++
			continue
		}

		var anomaly *bool
		if anomalyIdx >= 0 && anomalyIdx < len(row) {
			if b, err := strconv.ParseBool(strings.TrimSpace(row[anomalyIdx])); err == nil {
				anomaly = &b
			}
		}

		rows = append(rows, pendingRow{
			customerID: customerID,
			rawMonth:   rawMonth,
			units:      units,
			peak:       peak,
			anomaly:    anomaly,
		})
	}

	// Strict pass over the whole column; one nonconforming month switches
	// the entire table to the permissive layouts
	strict := true
	for _, r := range rows {
		if _, err := time.Parse(canonicalMonthLayout, r.rawMonth); err != nil {
			strict = false
			break
		}
	}
	if !strict {
		n.logger.Debug("Table months nonconforming, using permissive parsing", "table", t.Name)
	}

	var records []UsageRecord
	for _, r := range rows {
		var parsed time.Time
		var err error
		if strict {
			parsed, err = time.Parse(canonicalMonthLayout, r.rawMonth)
		} else {
			parsed, err = parseMonthPermissive(r.rawMonth)
		}
		if err != nil {
			stats.UnparsableMonths++
			continue
		}

		monthDate := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
		records = append(records, UsageRecord{
			CustomerID:    r.customerID,
			Month:         monthDate.Format(canonicalMonthLayout),
			MonthDate:     monthDate,
			UnitsConsumed: r.units,
			PeakLoadKW:    r.peak,
			IsAnomaly:     r.anomaly,
		})
	}

	return records, stats, nil
}

// parseNumeric parses a cell as a finite float. NaN and infinities count as
// missing, same as an unparsable cell.
func parseNumeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseMonthPermissive tries each known layout in order
func parseMonthPermissive(s string) (time.Time, error) {
	for _, layout := range permissiveMonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized month format %q", s)
}

// recordKey identifies a (customer, month) pair for duplicate detection
type recordKey struct {
	customerID string
	month      string
}

// applyDuplicatePolicy resolves repeated (customer, month) rows across the
// concatenated tables. keep-all leaves them alone; keep-first and keep-last
// choose by position in upload order.
func (n *Normalizer) applyDuplicatePolicy(records []UsageRecord) ([]UsageRecord, int) {
	keepLast := false
	switch n.config.DuplicatePolicy {
	case DuplicateKeepFirst:
	case DuplicateKeepLast:
		keepLast = true
	default:
		return records, 0
	}

	chosen := make(map[recordKey]int)
	for i, r := range records {
		k := recordKey{r.CustomerID, r.Month}
		if _, ok := chosen[k]; !ok || keepLast {
			chosen[k] = i
		}
	}

	var kept []UsageRecord
	for i, r := range records {
		if chosen[recordKey{r.CustomerID, r.Month}] == i {
			kept = append(kept, r)
		}
	}

	return kept, len(records) - len(kept)
}

// buildDataset groups records by customer and sorts both levels: customers
// by ID, records by month. The stable sort preserves upload order among
// equal months so keep-all duplicates stay deterministic.
func buildDataset(records []UsageRecord) Dataset {
	groups := make(map[string][]UsageRecord)
	var ids []string
	for _, r := range records {
		if _, ok := groups[r.CustomerID]; !ok {
			ids = append(ids, r.CustomerID)
		}
		groups[r.CustomerID] = append(groups[r.CustomerID], r)
	}
	sort.Strings(ids)

	ds := Dataset{}
	for _, id := range ids {
		recs := groups[id]
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].MonthDate.Before(recs[j].MonthDate)
		})
		ds.Customers = append(ds.Customers, CustomerSeries{
			CustomerID: id,
			Records:    recs,
		})
	}

	return ds
}
