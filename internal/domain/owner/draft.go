package owner

import "strings"

// NeedUrgency grades how badly a roster needs a position on draft day.
type NeedUrgency string

// Need urgencies.
const (
	NeedCritical NeedUrgency = "CRITICAL"
	NeedHigh     NeedUrgency = "HIGH"
	NeedMedium   NeedUrgency = "MEDIUM"
	NeedLow      NeedUrgency = "LOW"
)

// ReachPenalty is applied by draft evaluators when a pick is taken well ahead
// of the prospect's board position.
const ReachPenalty = -5

// NeedBonus returns the draft-board bonus for an urgency. Unknown and LOW
// urgencies carry no bonus. Valuation never reads this table.
func NeedBonus(u NeedUrgency) int {
	switch NeedUrgency(strings.ToUpper(string(u))) {
	case NeedCritical:
		return 15
	case NeedHigh:
		return 8
	case NeedMedium:
		return 3
	default:
		return 0
	}
}
