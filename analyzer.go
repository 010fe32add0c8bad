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
	"runtime"
	"sync"
)

// TrendAnalyzer compares chronologically adjacent months within each
// customer's series and applies the detection rule cascade
type TrendAnalyzer struct {
	config *Config
	logger *Logger
}

// NewTrendAnalyzer creates a new trend analyzer
func NewTrendAnalyzer(config *Config, logger *Logger) *TrendAnalyzer {
	return &TrendAnalyzer{
		config: config,
		logger: logger.WithComponent("analyzer"),
	}
}

// Analyze produces change records for every customer with at least two
// records. Customers are independent, so they fan out across a worker pool;
// each worker writes into a slot indexed by customer position, keeping the
// output order free of scheduling effects.
func (a *TrendAnalyzer) Analyze(ds *Dataset) []ChangeRecord {
	workers := a.config.AnalysisWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(ds.Customers) {
		workers = len(ds.Customers)
	}

	a.logger.Info("Starting trend analysis",
		"customers", len(ds.Customers),
		"workers", workers,
	)

	results := make([][]ChangeRecord, len(ds.Customers))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.analyzeCustomer(&ds.Customers[i])
			}
		}()
	}

	for i := range ds.Customers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	skipped := 0
	for _, c := range ds.Customers {
		if len(c.Records) < 2 {
			skipped++
		}
	}

	var records []ChangeRecord
	suspicious := 0
	for _, r := range results {
		for _, cr := range r {
			if cr.IsSuspicious {
				suspicious++
			}
		}
		records = append(records, r...)
	}

	a.logger.Info("Trend analysis completed",
		"comparisons", len(records),
		"suspicious", suspicious,
		"customers_skipped", skipped,
	)

	return records
}

// analyzeCustomer walks one sorted series pairwise. Single-record customers
// produce nothing; there is no previous month to compare against.
func (a *TrendAnalyzer) analyzeCustomer(series *CustomerSeries) []ChangeRecord {
	if len(series.Records) < 2 {
		return nil
	}

	records := make([]ChangeRecord, 0, len(series.Records)-1)
	for i := 1; i < len(series.Records); i++ {
		records = append(records, a.compareMonths(series.Records[i-1], series.Records[i]))
	}

	return records
}

// compareMonths evaluates the rule cascade for one adjacent pair. Rules see
// the unrounded change values; rounding applies only to the stored record.
// The risk level is the maximum over the fired rules, starting from Low.
func (a *TrendAnalyzer) compareMonths(prev, curr UsageRecord) ChangeRecord {
	unitsChange := curr.UnitsConsumed - prev.UnitsConsumed
	unitsChangePct := percentChange(curr.UnitsConsumed, prev.UnitsConsumed)
	peakChange := curr.PeakLoadKW - prev.PeakLoadKW
	peakChangePct := percentChange(curr.PeakLoadKW, prev.PeakLoadKW)

	var reasons []string
	risk := RiskLow

	if peakChangePct <= a.config.PeakLoadDropThresholdPct {
		reasons = append(reasons, ReasonPeakLoadDrop)
		risk = maxRisk(risk, RiskHigh)
	}

	if unitsChangePct <= a.config.UnitsDropThresholdPct {
		reasons = append(reasons, ReasonUnitsDrop)
		risk = maxRisk(risk, RiskHigh)
	}

	if curr.UnitsConsumed < a.config.MinUnitsThreshold {
		reasons = append(reasons, ReasonLowConsumption)
		risk = maxRisk(risk, RiskMedium)
	}

	if curr.UnitsConsumed > a.config.HighUsageFloor && curr.PeakLoadKW < a.config.LowPeakFloor {
		reasons = append(reasons, ReasonPeakMismatch)
		risk = maxRisk(risk, RiskMedium)
	}

	if unitsChangePct <= a.config.CombinedDropThresholdPct && peakChangePct <= a.config.CombinedDropThresholdPct {
		reasons = append(reasons, ReasonCombinedDrop)
		risk = maxRisk(risk, RiskMedium)
	}

	suspicious := len(reasons) > 0
	if suspicious {
		a.logger.LogSuspiciousChange(curr.CustomerID, curr.Month, risk, reasons)
	} else {
		reasons = []string{ReasonNormal}
	}

	return ChangeRecord{
		CustomerID:        curr.CustomerID,
		PrevMonth:         prev.Month,
		CurrentMonth:      curr.Month,
		PrevUnits:         prev.UnitsConsumed,
		CurrentUnits:      curr.UnitsConsumed,
		UnitsChange:       round2(unitsChange),
		UnitsChangePct:    round2(unitsChangePct),
		PrevPeakLoad:      prev.PeakLoadKW,
		CurrentPeakLoad:   curr.PeakLoadKW,
		PeakLoadChange:    round2(peakChange),
		PeakLoadChangePct: round2(peakChangePct),
		IsSuspicious:      suspicious,
		RiskLevel:         risk,
		Reasons:           reasons,
	}
}

// percentChange returns the relative change in percent, or zero when the
// previous value is not positive
func percentChange(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

// round2 rounds to two decimal places for stored and exported values
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercentage formats a value as a percentage
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatUnits formats a consumption value in kWh
func FormatUnits(value float64) string {
	return fmt.Sprintf("%.2f kWh", value)
}

// FormatKW formats a peak load value in kW
func FormatKW(value float64) string {
	return fmt.Sprintf("%.2f kW", value)
}
