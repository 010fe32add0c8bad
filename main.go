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
	"flag"
	"fmt"
	"os"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	outputDir := flag.String("out", "", "Output directory for exports (overrides config)")
	reportPath := flag.String("report", "", "Output file for the Markdown report (default: stdout)")
	htmlPath := flag.String("html", "", "Output file for the HTML report (skipped when empty)")
	csvExport := flag.Bool("csv", false, "Export change records and customer summaries as CSV")
	jsonExport := flag.Bool("json", false, "Export the full analysis result as JSON")
	customerID := flag.String("customer", "", "Report on a single customer instead of the full run")
	workers := flag.Int("workers", 0, "Number of analysis workers (0 = number of CPUs)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("Electricity-Theft-Detection %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting electricity theft detection", "version", GetVersion())

	// Check for updates (non-blocking)
	go CheckForUpdates(logger)

	// Load configuration
	logger.Info("Loading configuration", "config_file", *configPath)
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *workers > 0 {
		config.AnalysisWorkers = *workers
	}
	if *outputDir != "" {
		config.OutputDir = *outputDir
	}
	if *debug {
		config.Debug = true
	}
	if config.Debug {
		// Recreate logger with debug enabled
		logger = NewLogger(true)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully")

	// Load input tables
	inputFiles := flag.Args()
	logger.Info("Loading input tables", "files", len(inputFiles))
	loader := NewCSVLoader(logger)
	tables, loadRejections := loader.LoadFiles(inputFiles)

	// Run the analysis pipeline
	pipeline := NewPipeline(config, logger)
	result := pipeline.Run(tables, loadRejections)

	// Store the run; the session is the single holder of the latest result
	session := NewAnalysisSession(logger)
	session.Store(result)

	if highRisk := session.SummariesAtRisk(RiskHigh); len(highRisk) > 0 {
		logger.Warn("High risk customers detected", "count", len(highRisk))
	}

	// Export requested artifacts
	if *csvExport || *jsonExport {
		logger.Info("Initializing exporter", "path", config.OutputDir)
		exporter, err := NewExporter(config.OutputDir, logger)
		if err != nil {
			logger.Error("Failed to initialize exporter", "error", err)
			os.Exit(1)
		}

		if *jsonExport {
			logger.Info("Exporting analysis result as JSON")
			if _, err := exporter.ExportJSON(result); err != nil {
				logger.Error("Failed to export JSON", "error", err)
				os.Exit(1)
			}
		}

		if *csvExport {
			logger.Info("Exporting change records and summaries as CSV")
			if _, err := exporter.ExportCSVs(result); err != nil {
				logger.Error("Failed to export CSVs", "error", err)
				os.Exit(1)
			}
		}
	}

	// Generate report (full run or single customer)
	reporter := NewReporter(logger)
	if *customerID != "" {
		logger.Info("Generating customer report")
		if err := reporter.GenerateCustomerReport(result, *customerID, *reportPath); err != nil {
			logger.Error("Failed to generate customer report", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("Generating Markdown report")
		if err := reporter.GenerateReport(result, *reportPath); err != nil {
			logger.Error("Failed to generate report", "error", err)
			os.Exit(1)
		}
	}

	if *htmlPath != "" {
		logger.Info("Generating HTML report")
		htmlReporter := NewHTMLReporter(logger)
		if err := htmlReporter.GenerateHTMLReport(result, *htmlPath); err != nil {
			logger.Error("Failed to generate HTML report", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Analysis completed successfully", "state", string(result.State), "run_id", result.RunID)
}
