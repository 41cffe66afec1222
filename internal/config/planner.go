package config

import (
	"os"
	"strconv"
)

const (
	legacyWeekendCheckEnv = "LEGACY_WEEKEND_CHECK"
	defaultLeadMinutesEnv = "DEFAULT_LEAD_MINUTES"

	defaultLeadMinutes = 5
)

type PlannerConfig struct {
	// LegacyWeekendCheck keeps the old Saturday/Sunday test that compared
	// against day 0 instead of day 7, so Sunday lessons were never skipped.
	LegacyWeekendCheck bool
	DefaultLeadMinutes int
}

func LoadPlannerConfig() *PlannerConfig {
	lead := defaultLeadMinutes
	if v := os.Getenv(defaultLeadMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			lead = parsed
		}
	}

	return &PlannerConfig{
		LegacyWeekendCheck: os.Getenv(legacyWeekendCheckEnv) == "true",
		DefaultLeadMinutes: lead,
	}
}
