package coverage

import (
	"fmt"

	"github.com/poiesic/insight/core"
)

// Config holds coverage scoring parameters.
type Config struct {
	// GapThreshold is the coverage percentage below which a question is
	// flagged as a gap.
	GapThreshold float64

	// CriticalThreshold is the percentage below which a gap is critical
	// rather than moderate.
	CriticalThreshold float64

	// QuoteBaseline is the expected confidence-weighted quote count for a
	// fully evidenced question.
	QuoteBaseline float64

	// ConfidenceWeights maps theme confidence tags to evidence weights.
	ConfidenceWeights map[core.ConfidenceTag]float64

	// SemanticFallbackThreshold is the minimum similarity for a theme with
	// no explicit addressed questions to still count as (low confidence)
	// support.
	SemanticFallbackThreshold float64
}

// DefaultConfig returns the standard coverage parameters.
func DefaultConfig() Config {
	return Config{
		GapThreshold:      50,
		CriticalThreshold: 25,
		QuoteBaseline:     5,
		ConfidenceWeights: map[core.ConfidenceTag]float64{
			core.ConfidenceHigh:   1.0,
			core.ConfidenceMedium: 0.6,
			core.ConfidenceLow:    0.3,
		},
		SemanticFallbackThreshold: 0.5,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.GapThreshold < 0 || c.GapThreshold > 100 {
		return fmt.Errorf("%w: GapThreshold must be in [0,100]", core.ErrInvalidConfig)
	}
	if c.CriticalThreshold < 0 || c.CriticalThreshold > c.GapThreshold {
		return fmt.Errorf("%w: CriticalThreshold must be in [0, GapThreshold]", core.ErrInvalidConfig)
	}
	if c.QuoteBaseline <= 0 {
		return fmt.Errorf("%w: QuoteBaseline must be positive", core.ErrInvalidConfig)
	}
	for _, tag := range []core.ConfidenceTag{core.ConfidenceHigh, core.ConfidenceMedium, core.ConfidenceLow} {
		if _, ok := c.ConfidenceWeights[tag]; !ok {
			return fmt.Errorf("%w: ConfidenceWeights missing %q", core.ErrInvalidConfig, tag)
		}
	}
	return nil
}
