package config

import "fmt"

// ModerationConfig holds moderation engine configuration.
type ModerationConfig struct {
	// ReportThreshold is the number of distinct reporters against the same
	// target required to trigger an automatic ban.
	ReportThreshold int
}

// LoadModerationConfigFromEnv loads moderation configuration from environment variables.
func LoadModerationConfigFromEnv() ModerationConfig {
	return ModerationConfig{
		ReportThreshold: GetEnvInt("REPORT_THRESHOLD", 3),
	}
}

// Validate validates moderation configuration.
func (c ModerationConfig) Validate() error {
	if c.ReportThreshold < 2 {
		return fmt.Errorf("invalid REPORT_THRESHOLD: %d (must be at least 2)", c.ReportThreshold)
	}
	return nil
}
