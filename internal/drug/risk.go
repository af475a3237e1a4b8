package drug

import "fmt"

// Level is the counterfeit risk of a drug.
type Level int

const (
	// Unknown is a drug without a verified entry
	Unknown Level = iota
	// Low is a drug matching its verified entry
	Low
	// Medium is a drug whose weight deviates noticeably from its verified entry
	Medium
	// High is a drug with the wrong ingredient or formula, or a very different weight
	High
)

// Thresholds are the largest relative molecular weight deviations
// (as fractions, 0.02 is 2%) for a Low and a Medium risk.
type Thresholds struct {
	Low    float64 `mapstructure:"low"`
	Medium float64 `mapstructure:"medium"`
}

// DefaultThresholds are ±2% for Low and ±50% for Medium.
var DefaultThresholds = Thresholds{Low: 0.02, Medium: 0.50}

// Validate returns an error unless 0 <= Low <= Medium.
func (t Thresholds) Validate() error {
	if t.Low < 0 || t.Medium < t.Low {
		return fmt.Errorf("weight deviation thresholds need 0 <= low <= medium, got low %v, medium %v", t.Low, t.Medium)
	}
	return nil
}

// Classify a drug from whether its ingredient and formula match the verified
// entry and how far its molecular weight deviates from it.
func Classify(ingredientMatch, formulaMatch bool, deviation float64, t Thresholds) Level {
	if !ingredientMatch || !formulaMatch {
		return High
	}

	switch {
	case deviation <= t.Low:
		return Low
	case deviation <= t.Medium:
		return Medium
	default:
		return High
	}
}

func (l Level) String() string {
	switch l {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Advice is what the user is told about a drug at this level.
func (l Level) Advice() string {
	switch l {
	case Low:
		return "The drug is most likely genuine."
	case Medium:
		return "There is some variation, and the drug is likely a counterfeit. " +
			"Please consult a trusted professional for further verification before taking."
	case High:
		return "The drug is a counterfeit. Whether it's mislabelling or improper chemical composition, " +
			"it can be life threatening to ingest counterfeit drugs. Do NOT take."
	default:
		return "Drug not found in the verified database."
	}
}
