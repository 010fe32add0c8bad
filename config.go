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
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duplicate handling policies for repeated (customer, month) rows
const (
	DuplicateKeepAll   = "keep-all"
	DuplicateKeepFirst = "keep-first"
	DuplicateKeepLast  = "keep-last"
)

// Config holds the application configuration
type Config struct {
	// Detection thresholds (drop thresholds are negative percentages)
	PeakLoadDropThresholdPct float64 `yaml:"peak_load_drop_threshold_pct"`
	UnitsDropThresholdPct    float64 `yaml:"units_drop_threshold_pct"`
	MinUnitsThreshold        float64 `yaml:"min_units_threshold"`
	CombinedDropThresholdPct float64 `yaml:"combined_drop_threshold_pct"`
	HighUsageFloor           float64 `yaml:"high_usage_floor"`
	LowPeakFloor             float64 `yaml:"low_peak_floor"`

	// Customer risk classification ratios
	HighRiskRatio   float64 `yaml:"high_risk_ratio"`
	MediumRiskRatio float64 `yaml:"medium_risk_ratio"`

	// Normalization settings
	DuplicatePolicy string `yaml:"duplicate_policy"`

	// Analysis settings
	AnalysisWorkers int `yaml:"analysis_workers"` // 0 means one per CPU

	// Storage
	OutputDir string `yaml:"output_dir"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		PeakLoadDropThresholdPct: -40.0,
		UnitsDropThresholdPct:    -40.0,
		MinUnitsThreshold:        50.0,
		CombinedDropThresholdPct: -25.0,
		HighUsageFloor:           200.0,
		LowPeakFloor:             1.0,
		HighRiskRatio:            0.5,
		MediumRiskRatio:          0.25,
		DuplicatePolicy:          DuplicateKeepAll,
		OutputDir:                "output",
		Debug:                    false,
	}

	// Load .env if present so its variables participate in the overrides
	_ = godotenv.Load()

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("THEFT_PEAK_LOAD_DROP_PCT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.PeakLoadDropThresholdPct = f
		}
	}
	if val := os.Getenv("THEFT_UNITS_DROP_PCT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.UnitsDropThresholdPct = f
		}
	}
	if val := os.Getenv("THEFT_MIN_UNITS"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.MinUnitsThreshold = f
		}
	}
	if val := os.Getenv("THEFT_COMBINED_DROP_PCT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.CombinedDropThresholdPct = f
		}
	}
	if val := os.Getenv("THEFT_HIGH_USAGE_FLOOR"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.HighUsageFloor = f
		}
	}
	if val := os.Getenv("THEFT_LOW_PEAK_FLOOR"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.LowPeakFloor = f
		}
	}
	if val := os.Getenv("THEFT_HIGH_RISK_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.HighRiskRatio = f
		}
	}
	if val := os.Getenv("THEFT_MEDIUM_RISK_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.MediumRiskRatio = f
		}
	}
	if val := os.Getenv("THEFT_DUPLICATE_POLICY"); val != "" {
		c.DuplicatePolicy = val
	}
	if val := os.Getenv("THEFT_WORKERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.AnalysisWorkers = n
		}
	}
	if val := os.Getenv("THEFT_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}
	if val := os.Getenv("THEFT_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Drop thresholds are negative; magnitude is bounded to keep rules meaningful
	if c.PeakLoadDropThresholdPct < -60 || c.PeakLoadDropThresholdPct > -20 {
		errors = append(errors, "peak_load_drop_threshold_pct must be between -60 and -20")
	}
	if c.UnitsDropThresholdPct < -60 || c.UnitsDropThresholdPct > -20 {
		errors = append(errors, "units_drop_threshold_pct must be between -60 and -20")
	}
	if c.CombinedDropThresholdPct < -60 || c.CombinedDropThresholdPct > -20 {
		errors = append(errors, "combined_drop_threshold_pct must be between -60 and -20")
	}

	if c.MinUnitsThreshold < 10 || c.MinUnitsThreshold > 200 {
		errors = append(errors, "min_units_threshold must be between 10 and 200")
	}

	if c.HighUsageFloor <= 0 {
		errors = append(errors, "high_usage_floor must be positive")
	}
	if c.LowPeakFloor <= 0 {
		errors = append(errors, "low_peak_floor must be positive")
	}

	// Classification ratios form an ordered pair on [0, 1]
	if c.MediumRiskRatio < 0 || c.MediumRiskRatio > 1 {
		errors = append(errors, "medium_risk_ratio must be between 0 and 1")
	}
	if c.HighRiskRatio < 0 || c.HighRiskRatio > 1 {
		errors = append(errors, "high_risk_ratio must be between 0 and 1")
	}
	if c.MediumRiskRatio >= c.HighRiskRatio {
		errors = append(errors, "medium_risk_ratio must be below high_risk_ratio")
	}

	switch c.DuplicatePolicy {
	case DuplicateKeepAll, DuplicateKeepFirst, DuplicateKeepLast:
	default:
		errors = append(errors, fmt.Sprintf("duplicate_policy must be one of %s, %s, %s",
			DuplicateKeepAll, DuplicateKeepFirst, DuplicateKeepLast))
	}

	if c.AnalysisWorkers < 0 {
		errors = append(errors, "analysis_workers must not be negative")
	}

	// Set default output dir if empty
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Thresholds returns the effective detection settings in result form
func (c *Config) Thresholds() Thresholds {
	return Thresholds{
		PeakLoadDropPct: c.PeakLoadDropThresholdPct,
		UnitsDropPct:    c.UnitsDropThresholdPct,
		MinUnits:        c.MinUnitsThreshold,
		CombinedDropPct: c.CombinedDropThresholdPct,
		HighUsageFloor:  c.HighUsageFloor,
		LowPeakFloor:    c.LowPeakFloor,
		HighRiskRatio:   c.HighRiskRatio,
		MediumRiskRatio: c.MediumRiskRatio,
		DuplicatePolicy: c.DuplicatePolicy,
	}
}
