package config

import "fmt"

var supportedLanguages = map[string]bool{
	"python": true, "javascript": true, "typescript": true, "java": true,
	"c#": true, "c": true, "c++": true, "go": true, "ada": true,
}

var supportedStorageTypes = map[string]bool{
	"sqlite": true,
}

// ValidateConfiguration runs every structural check against config and
// returns a human-readable message per violation found. An empty slice
// means the configuration is usable as-is.
func (config *Config) ValidateConfiguration() []string {
	var errs []string

	errs = append(errs, validateSeverityRange("complexity", config.Thresholds.Complexity)...)
	errs = append(errs, validateSeverityRange("cognitive_complexity", config.Thresholds.CognitiveComplexity)...)
	errs = append(errs, validateSeverityRange("churn", config.Thresholds.Churn)...)

	ownership := config.Thresholds.Ownership
	if ownership.LowAuthor > ownership.SingleOwner {
		errs = append(errs, "ownership: low_author threshold must be less than single_owner threshold")
	}
	if ownership.SingleOwner > 1.0 || ownership.LowAuthor < 0 {
		errs = append(errs, "ownership: thresholds must be fractions between 0 and 1")
	}

	for _, lang := range config.Analysis.Languages {
		if !supportedLanguages[lang] {
			errs = append(errs, fmt.Sprintf("unsupported language: %q", lang))
		}
	}

	if config.Storage.Type != "" && !supportedStorageTypes[config.Storage.Type] {
		errs = append(errs, fmt.Sprintf("unsupported storage type: %q", config.Storage.Type))
	}

	if config.Analysis.MaxWorkers < 0 {
		errs = append(errs, fmt.Sprintf("max_workers must be >= 0, got %d", config.Analysis.MaxWorkers))
	}

	return errs
}

// IsValid reports whether ValidateConfiguration found no violations.
func (config *Config) IsValid() bool {
	return len(config.ValidateConfiguration()) == 0
}

// validateSeverityRange catches both ordering violations and implausible
// magnitudes (a threshold triple whose members exceed a sane ceiling
// signals a typo, not an intentionally lax project).
func validateSeverityRange(name string, t SeverityThresholds) []string {
	var errs []string

	if t.Info > t.Warning {
		errs = append(errs, fmt.Sprintf("%s: info threshold must be less than warning threshold", name))
	}
	if t.Warning > t.Critical {
		errs = append(errs, fmt.Sprintf("%s: warning threshold must be less than critical threshold", name))
	}

	const implausibleCeiling = 1000
	for _, v := range []int{t.Info, t.Warning, t.Critical} {
		if v > implausibleCeiling {
			errs = append(errs, fmt.Sprintf("%s: threshold %d exceeds plausible ceiling", name, v))
		}
	}

	return errs
}
