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
	"encoding/base64"
	"fmt"
	"sort"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator handles chart generation
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match our HTML report dark theme
	}
}

// GenerateRiskDistributionChart creates a pie chart of customers per overall
// risk level
func (cg *ChartGenerator) GenerateRiskDistributionChart(summaries []CustomerSummary) (string, error) {
	if len(summaries) == 0 {
		return "", fmt.Errorf("no customer summaries available")
	}

	counts := make(map[RiskLevel]float64)
	for _, cs := range summaries {
		counts[cs.OverallRisk]++
	}

	values := []float64{counts[RiskHigh], counts[RiskMedium], counts[RiskLow]}
	legendLabels := []string{"High Risk", "Medium Risk", "Low Risk"}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc("Customer Risk Distribution"),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(600),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render risk chart: %w", err)
	}

	// Convert to base64 for embedding in HTML
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// GenerateMonthlyConsumptionChart creates a bar chart of total units
// consumed per month across the whole dataset
func (cg *ChartGenerator) GenerateMonthlyConsumptionChart(ds *Dataset) (string, error) {
	totals := aggregateUnitsByMonth(ds)
	if len(totals) == 0 {
		return "", fmt.Errorf("no usage records available")
	}

	// Canonical YYYY-MM months sort chronologically as strings
	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	values := make([]float64, 0, len(months))
	for _, month := range months {
		values = append(values, totals[month])
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Total Consumption by Month"),
		charts.XAxisDataOptionFunc(months),
		charts.LegendLabelsOptionFunc([]string{"Units (kWh)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render consumption chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// GenerateCustomerTrendChart creates a line chart of one customer's units
// and peak load across their billing months
func (cg *ChartGenerator) GenerateCustomerTrendChart(series *CustomerSeries) (string, error) {
	if len(series.Records) == 0 {
		return "", fmt.Errorf("no records for customer %s", series.CustomerID)
	}

	var labels []string
	var units []float64
	var peaks []float64

	for _, rec := range series.Records {
		labels = append(labels, rec.Month)
		units = append(units, rec.UnitsConsumed)
		peaks = append(peaks, rec.PeakLoadKW)
	}

	values := [][]float64{units, peaks}
	legendLabels := []string{"Units (kWh)", "Peak Load (kW)"}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Usage Trend: %s", series.CustomerID)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legendLabels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render trend chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// aggregateUnitsByMonth sums units consumed per canonical month
func aggregateUnitsByMonth(ds *Dataset) map[string]float64 {
	totals := make(map[string]float64)
	for _, c := range ds.Customers {
		for _, rec := range c.Records {
			totals[rec.Month] += rec.UnitsConsumed
		}
	}
	return totals
}

// getTheme returns the chart theme name
func (cg *ChartGenerator) getTheme() string {
	return cg.theme
}
