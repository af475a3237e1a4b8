package drug

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// element symbol (one uppercase letter, then lowercase letters) and an optional count
var formulaToken = regexp.MustCompile(`([A-Z][a-z]*)(\d*)`)

// maxAtoms caps the count of an element
const maxAtoms = math.MaxInt32

// Atoms maps an element symbol to its count in a molecular formula.
type Atoms map[string]int

// ParseFormula counts the atoms of each element in a formula like "C9H8O4".
// An element without a count has one atom and repeated elements accumulate,
// so "CH3COOH" is C2 H4 O2. Counts are capped at maxAtoms. Anything that
// isn't an element token is ignored.
func ParseFormula(formula string) Atoms {
	atoms := make(Atoms)
	for _, m := range formulaToken.FindAllStringSubmatch(formula, -1) {
		count := 1
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil || n > maxAtoms {
				n = maxAtoms // only digits match, so err is an overflow
			}
			count = n
		}
		if count > maxAtoms-atoms[m[1]] {
			count = maxAtoms - atoms[m[1]]
		}
		atoms[m[1]] += count
	}
	return atoms
}

// Equal returns whether both have the same elements with the same counts.
func (a Atoms) Equal(other Atoms) bool {
	if len(a) != len(other) {
		return false
	}
	for el, n := range a {
		if m, ok := other[el]; !ok || m != n {
			return false
		}
	}
	return true
}

// String returns the formula in Hill order: carbon, hydrogen, then the
// rest alphabetically. Without carbon everything is alphabetical.
func (a Atoms) String() string {
	elements := make([]string, 0, len(a))
	for el := range a {
		elements = append(elements, el)
	}

	_, carbon := a["C"]
	rank := func(el string) int {
		if carbon && el == "C" {
			return 0
		}
		if carbon && el == "H" {
			return 1
		}
		return 2
	}
	sort.Slice(elements, func(i, j int) bool {
		if ri, rj := rank(elements[i]), rank(elements[j]); ri != rj {
			return ri < rj
		}
		return elements[i] < elements[j]
	})

	var b strings.Builder
	for _, el := range elements {
		b.WriteString(el)
		if n := a[el]; n != 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}

// FormulaMatch returns whether two formulas have the same atom counts,
// regardless of the order they're written in.
func FormulaMatch(a, b string) bool {
	return ParseFormula(a).Equal(ParseFormula(b))
}
