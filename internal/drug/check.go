package drug

import (
	"math"
	"sort"
	"strings"
)

// Input is the composition of a drug to check, as listed on its label.
type Input struct {
	Name             string
	ActiveIngredient string
	Formula          string

	// Weight is the listed molecular weight in g/mol
	Weight float64
}

// Comparison of an input drug against one verified entry.
type Comparison struct {
	Name  string
	Level Level

	// Found is false if the drug has no verified entry. The
	// remaining fields are only set if it's true.
	Found bool

	// Deviation is the relative difference in molecular weight, 0.01 is 1%
	Deviation float64

	IngredientMatch bool
	FormulaMatch    bool
}

// Checker compares drugs against the verified drugs in a session's Store.
type Checker struct {
	Store      *Store
	Thresholds Thresholds
}

// NewChecker returns a Checker using the default thresholds.
func NewChecker(s *Store) Checker {
	return Checker{Store: s, Thresholds: DefaultThresholds}
}

// Check compares a drug against every verified entry with its name. A drug
// without a verified entry gets a single comparison with an Unknown level.
func (c Checker) Check(in Input) []Comparison {
	verified := c.Store.Lookup(in.Name)
	if len(verified) == 0 {
		return []Comparison{{Name: in.Name, Level: Unknown}}
	}

	comparisons := make([]Comparison, 0, len(verified))
	for _, v := range verified {
		comparisons = append(comparisons, c.compare(in, v))
	}
	return comparisons
}

// Scan compares each sample drug against the first verified entry with its name.
func (c Checker) Scan(samples []Input) []Comparison {
	comparisons := make([]Comparison, 0, len(samples))
	for _, in := range samples {
		verified := c.Store.Lookup(in.Name)
		if len(verified) == 0 {
			comparisons = append(comparisons, Comparison{Name: in.Name, Level: Unknown})
			continue
		}
		comparisons = append(comparisons, c.compare(in, verified[0]))
	}
	return comparisons
}

func (c Checker) compare(in Input, v Verified) Comparison {
	ingredientMatch := IngredientMatch(in.ActiveIngredient, v.ActiveIngredient)
	formulaMatch := FormulaMatch(in.Formula, v.Formula)
	deviation := Deviation(in.Weight, v.Weight)

	return Comparison{
		Name:            v.Name,
		Level:           Classify(ingredientMatch, formulaMatch, deviation, c.Thresholds),
		Found:           true,
		Deviation:       deviation,
		IngredientMatch: ingredientMatch,
		FormulaMatch:    formulaMatch,
	}
}

// Deviation is the relative difference between a listed and a verified
// molecular weight. A verified weight that isn't positive deviates infinitely.
func Deviation(listed, verified float64) float64 {
	if !(verified > 0) {
		return math.Inf(1)
	}
	return math.Abs(verified-listed) / verified
}

// IngredientMatch returns whether two comma separated lists of active
// ingredients name the same ingredients, ignoring order, case and spacing.
func IngredientMatch(a, b string) bool {
	ia, ib := ingredients(a), ingredients(b)
	if len(ia) != len(ib) {
		return false
	}
	for i := range ia {
		if ia[i] != ib[i] {
			return false
		}
	}
	return true
}

// ingredients returns the sorted, de-duplicated ingredients in a list
func ingredients(list string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ing := range strings.Split(list, ",") {
		ing = strings.ToLower(strings.Join(strings.Fields(ing), " "))
		if ing == "" || seen[ing] {
			continue
		}
		seen[ing] = true
		out = append(out, ing)
	}
	sort.Strings(out)
	return out
}
