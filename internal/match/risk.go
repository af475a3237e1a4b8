package match

import "fmt"

// Risk is a severity bucket for a matched gene's risk indicator.
type Risk int

const (
	// LowRisk is an indicator below 2
	LowRisk Risk = iota
	// ModerateRisk is an indicator of 2 or 3
	ModerateRisk
	// HighRisk is an indicator of 4 or more
	HighRisk
)

// Classify maps a gene's risk indicator to its bucket.
func Classify(indicator int) Risk {
	switch {
	case indicator >= 4:
		return HighRisk
	case indicator >= 2:
		return ModerateRisk
	default:
		return LowRisk
	}
}

func (r Risk) String() string {
	switch r {
	case HighRisk:
		return "high risk"
	case ModerateRisk:
		return "moderate risk"
	default:
		return "low/no risk"
	}
}

// Headline is the short line shown before the risk message.
func (r Risk) Headline() string {
	switch r {
	case HighRisk:
		return "Uh oh..."
	case ModerateRisk:
		return "Hmmm..."
	default:
		return "Good news!"
	}
}

// Message describes the risk of developing a condition.
func (r Risk) Message(condition string) string {
	switch r {
	case HighRisk:
		return fmt.Sprintf("You are at a HIGH risk of developing %s.", condition)
	case ModerateRisk:
		return fmt.Sprintf("You are at a moderate risk of developing %s.", condition)
	default:
		return fmt.Sprintf("You have little to no risk of developing %s.", condition)
	}
}
