package pressure

import "github.com/okian/aav/internal/domain/player"

type settings struct {
	maxAdjustment float64
	thresholds    player.Thresholds
}

func defaultSettings() settings {
	return settings{
		maxAdjustment: DefaultMaxSecurityAdjustment,
		thresholds:    player.DefaultThresholds(),
	}
}

// Option configures the modifiers that take tuning.
type Option func(*settings)

// WithMaxAdjustment caps the job-security adjustment at ±v.
func WithMaxAdjustment(v float64) Option {
	return func(s *settings) {
		if v >= 0 {
			s.maxAdjustment = v
		}
	}
}

// WithThresholds sets the young/veteran cut-offs used by the win-now stage.
func WithThresholds(t player.Thresholds) Option {
	return func(s *settings) {
		if t.Young > 0 && t.Veteran > t.Young {
			s.thresholds = t
		}
	}
}
