package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles. Flags start from compiled-in
// defaults and can be overridden per flag through the environment:
// FEATURE_<NAME>=true|false, with dots replaced by underscores
// (FEATURE_PLANNER_SHORTEST_PATH=false).
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	// FeaturePlannerShortestPath exposes the shortest-path diagnostic
	// endpoint.
	FeaturePlannerShortestPath = "planner.shortest_path"

	// FeatureDiagnosticsCycles exposes the cycle-detection endpoint.
	FeatureDiagnosticsCycles = "diagnostics.cycles"

	// FeatureAnalyticsSummaryCache caches the analytics summary in Redis.
	FeatureAnalyticsSummaryCache = "analytics.summary_cache"
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]*Feature),
	}

	ff.initializeDefaults()
	ff.loadFromEnvironment()

	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeaturePlannerShortestPath] = &Feature{
		Name:        FeaturePlannerShortestPath,
		Description: "Shortest prerequisite chain endpoint",
		Enabled:     true,
	}

	ff.features[FeatureDiagnosticsCycles] = &Feature{
		Name:        FeatureDiagnosticsCycles,
		Description: "Prerequisite cycle detection endpoint",
		Enabled:     true,
	}

	ff.features[FeatureAnalyticsSummaryCache] = &Feature{
		Name:        FeatureAnalyticsSummaryCache,
		Description: "Redis cache in front of the analytics summary",
		Enabled:     true,
	}
}

// loadFromEnvironment applies FEATURE_* overrides.
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := "FEATURE_" + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))
		val := os.Getenv(envKey)
		if val == "" {
			continue
		}
		if enabled, err := strconv.ParseBool(val); err == nil {
			feature.Enabled = enabled
		}
	}
}

// IsEnabled reports whether a feature is enabled. Unknown flags are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	feature, ok := ff.features[name]
	return ok && feature.Enabled
}

// Set enables or disables a feature at runtime.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if feature, ok := ff.features[name]; ok {
		feature.Enabled = enabled
	}
}

// All returns a snapshot of every feature and its state.
func (ff *FeatureFlags) All() map[string]bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	out := make(map[string]bool, len(ff.features))
	for name, feature := range ff.features {
		out[name] = feature.Enabled
	}
	return out
}
