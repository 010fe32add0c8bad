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
	"time"

	"github.com/google/uuid"
)

// Pipeline orchestrates one analysis run: normalize, analyze, aggregate
type Pipeline struct {
	normalizer *Normalizer
	analyzer   *TrendAnalyzer
	aggregator *RiskAggregator
	config     *Config
	logger     *Logger
}

// NewPipeline creates a new analysis pipeline
func NewPipeline(config *Config, logger *Logger) *Pipeline {
	return &Pipeline{
		normalizer: NewNormalizer(config, logger),
		analyzer:   NewTrendAnalyzer(config, logger),
		aggregator: NewRiskAggregator(config, logger),
		config:     config,
		logger:     logger.WithComponent("pipeline"),
	}
}

// Run executes the full analysis over the supplied tables. loaderRejections
// carries files the loader could not read at all, so the run report still
// accounts for them. Run never fails; degraded input degrades the state.
func (p *Pipeline) Run(tables []RawTable, loaderRejections []TableRejection) *AnalysisResult {
	result := &AnalysisResult{
		RunID:          uuid.New().String(),
		GeneratedAt:    time.Now(),
		Thresholds:     p.config.Thresholds(),
		TablesRejected: append([]TableRejection(nil), loaderRejections...),
	}

	p.logger.Info("Starting analysis run",
		"run_id", result.RunID,
		"tables", len(tables),
		"unreadable_files", len(loaderRejections),
	)

	if len(tables) == 0 && len(loaderRejections) == 0 {
		result.State = StateNoData
		p.logger.Warn("No input tables supplied")
		return result
	}

	p.logger.LogAnalysisStage("normalize")
	normalized := p.normalizer.Normalize(tables)
	result.TablesRejected = append(result.TablesRejected, normalized.TablesRejected...)
	result.RowsDropped = normalized.RowsDropped
	result.Dataset = normalized.Dataset

	if normalized.Dataset.IsEmpty() {
		result.State = StateNothingUsable
		result.Summary = p.buildRunSummary(&normalized, nil, nil, len(loaderRejections))
		p.logger.Warn("No usable records after normalization",
			"tables_rejected", len(result.TablesRejected),
			"rows_dropped", result.RowsDropped.Total(),
		)
		return result
	}

	p.logger.LogAnalysisStage("analyze")
	result.ChangeRecords = p.analyzer.Analyze(&normalized.Dataset)

	p.logger.LogAnalysisStage("aggregate")
	result.Summaries = p.aggregator.Aggregate(&normalized.Dataset, result.ChangeRecords)
	result.State = StateAnalyzed
	result.Summary = p.buildRunSummary(&normalized, result.ChangeRecords, result.Summaries, len(loaderRejections))

	p.logger.Info("Analysis run completed",
		"run_id", result.RunID,
		"customers_analyzed", result.Summary.CustomersAnalyzed,
		"high_risk", result.Summary.HighRiskCustomers,
		"suspicious_comparisons", result.Summary.SuspiciousComparisons,
	)

	return result
}

// buildRunSummary derives the executive counters for one run
func (p *Pipeline) buildRunSummary(normalized *NormalizedData, changes []ChangeRecord, summaries []CustomerSummary, unreadableFiles int) RunSummary {
	summary := RunSummary{
		FilesLoaded:       normalized.TablesAccepted,
		FilesRejected:     unreadableFiles + len(normalized.TablesRejected),
		TotalRecords:      normalized.Dataset.TotalRecords(),
		TotalCustomers:    len(normalized.Dataset.Customers),
		CustomersAnalyzed: len(summaries),
		UniqueMonths:      normalized.Dataset.UniqueMonths(),
		TotalComparisons:  len(changes),
	}

	for _, cs := range summaries {
		switch cs.OverallRisk {
		case RiskHigh:
			summary.HighRiskCustomers++
		case RiskMedium:
			summary.MediumRiskCustomers++
		default:
			summary.LowRiskCustomers++
		}
	}

	for _, cr := range changes {
		if cr.IsSuspicious {
			summary.SuspiciousComparisons++
		}
	}

	if summary.TotalComparisons > 0 {
		summary.SuspiciousRate = round2(float64(summary.SuspiciousComparisons) / float64(summary.TotalComparisons) * 100)
	}

	return summary
}
