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
	"math"
)

// RiskAggregator rolls change records up into per-customer risk profiles
type RiskAggregator struct {
	config *Config
	logger *Logger
}

// NewRiskAggregator creates a new risk aggregator
func NewRiskAggregator(config *Config, logger *Logger) *RiskAggregator {
	return &RiskAggregator{
		config: config,
		logger: logger.WithComponent("aggregator"),
	}
}

// Aggregate builds one summary per customer that produced change records.
// Customers without a comparison never reach the trend table and are
// excluded here too.
func (g *RiskAggregator) Aggregate(ds *Dataset, changes []ChangeRecord) []CustomerSummary {
	changesByCustomer := make(map[string][]ChangeRecord)
	for _, cr := range changes {
		changesByCustomer[cr.CustomerID] = append(changesByCustomer[cr.CustomerID], cr)
	}

	var summaries []CustomerSummary
	for i := range ds.Customers {
		series := &ds.Customers[i]
		custChanges, ok := changesByCustomer[series.CustomerID]
		if !ok {
			continue
		}

		summary := g.summarizeCustomer(series, custChanges)
		if summary.OverallRisk == RiskHigh {
			g.logger.Warn("High risk customer",
				"customer_id", summary.CustomerID,
				"suspicious_periods", summary.SuspiciousPeriods,
				"total_comparisons", summary.TotalComparisons,
			)
		}
		summaries = append(summaries, summary)
	}

	g.logger.Info("Risk aggregation completed", "customers", len(summaries))

	return summaries
}

// summarizeCustomer computes the aggregate profile for one customer
func (g *RiskAggregator) summarizeCustomer(series *CustomerSeries, changes []ChangeRecord) CustomerSummary {
	units := make([]float64, len(series.Records))
	peaks := make([]float64, len(series.Records))
	for i, rec := range series.Records {
		units[i] = rec.UnitsConsumed
		peaks[i] = rec.PeakLoadKW
	}

	meanUnits := calculateMean(units)
	meanPeaks := calculateMean(peaks)

	suspicious := 0
	for _, cr := range changes {
		if cr.IsSuspicious {
			suspicious++
		}
	}

	latest, _ := series.LatestRecord()

	return CustomerSummary{
		CustomerID:         series.CustomerID,
		TotalMonths:        len(series.Records),
		AvgUnits:           round2(meanUnits),
		AvgPeakLoad:        round2(meanPeaks),
		UnitsVolatility:    round2(calculateStdDev(units, meanUnits)),
		PeakLoadVolatility: round2(calculateStdDev(peaks, meanPeaks)),
		SuspiciousPeriods:  suspicious,
		TotalComparisons:   len(changes),
		OverallRisk:        g.classifyOverallRisk(suspicious, len(changes)),
		LatestMonth:        latest.Month,
		LatestUnits:        latest.UnitsConsumed,
		LatestPeakLoad:     latest.PeakLoadKW,
	}
}

// classifyOverallRisk maps the suspicious ratio onto a risk level. Both
// boundaries are exclusive: a customer sitting exactly on the high ratio
// classifies as Medium, and exactly on the medium ratio as Low.
func (g *RiskAggregator) classifyOverallRisk(suspicious, comparisons int) RiskLevel {
	if comparisons == 0 {
		return RiskLow
	}

	ratio := float64(suspicious) / float64(comparisons)
	switch {
	case ratio > g.config.HighRiskRatio:
		return RiskHigh
	case ratio > g.config.MediumRiskRatio:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Statistical helper functions

// calculateMean calculates the mean of a slice of float64 values
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateStdDev calculates the sample standard deviation (n-1 divisor)
func calculateStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	variance := sumSquaredDiff / float64(len(values)-1)
	return math.Sqrt(variance)
}
