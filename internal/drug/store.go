// Package drug is for checking a medicine's composition against a table of
// verified drugs to judge whether it's a counterfeit.
package drug

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jjtimmons/biohack/internal/table"
)

var (
	// ErrInvalidWeight is returned for a molecular weight that isn't a positive number
	ErrInvalidWeight = errors.New("molecular weight must be a positive number of g/mol")

	// ErrMissingField is returned for a drug without a required field
	ErrMissingField = errors.New("missing required field")
)

// columns of the verified and counterfeit tables (after header normalization)
const (
	colName       = "drug_name"
	colIngredient = "active_ingredient"
	colFormula    = "molecular_formula"
	colWeight     = "molecular_weight_(g/mol)"
)

// Verified is a drug's verified composition.
type Verified struct {
	Name             string
	ActiveIngredient string
	Formula          string

	// Weight is the active ingredient's molecular weight in g/mol
	Weight float64
}

// Validate returns an error if a field is empty or the weight isn't positive.
func (v Verified) Validate() error {
	fields := []struct{ name, value string }{
		{"drug name", v.Name},
		{"active ingredient", v.ActiveIngredient},
		{"molecular formula", v.Formula},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if !(v.Weight > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, v.Weight)
	}
	return nil
}

// ParseWeight parses a user entered molecular weight.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || !(w > 0) || math.IsInf(w, 1) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidWeight, s)
	}
	return w, nil
}

// Report is a user's report of a suspicious drug.
type Report struct {
	ID       uuid.UUID
	Text     string
	Received time.Time
}

// Store holds the verified drugs of one session. Drugs added to it
// only last as long as the Store.
type Store struct {
	drugs   []Verified
	reports []Report
}

// NewStore returns a session store seeded with verified drugs.
func NewStore(drugs []Verified) *Store {
	s := &Store{drugs: make([]Verified, len(drugs))}
	copy(s.drugs, drugs)
	return s
}

// Add a newly verified drug to the session.
func (s *Store) Add(v Verified) error {
	v.Name = strings.TrimSpace(v.Name)
	v.ActiveIngredient = strings.TrimSpace(v.ActiveIngredient)
	v.Formula = strings.TrimSpace(v.Formula)
	if err := v.Validate(); err != nil {
		return fmt.Errorf("failed to add drug: %w", err)
	}

	s.drugs = append(s.drugs, v)
	return nil
}

// Lookup returns every verified entry for a drug name, case-insensitive,
// in the order they were loaded/added.
func (s *Store) Lookup(name string) []Verified {
	name = strings.TrimSpace(name)
	var found []Verified
	for _, d := range s.drugs {
		if strings.EqualFold(d.Name, name) {
			found = append(found, d)
		}
	}
	return found
}

// Len is the number of verified drugs.
func (s *Store) Len() int {
	return len(s.drugs)
}

// Drugs returns a copy of the verified drugs.
func (s *Store) Drugs() []Verified {
	out := make([]Verified, len(s.drugs))
	copy(out, s.drugs)
	return out
}

// Report records a suspicious drug report for the session.
func (s *Store) Report(text string) (Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Report{}, fmt.Errorf("%w: report text", ErrMissingField)
	}

	r := Report{ID: uuid.New(), Text: text, Received: time.Now()}
	s.reports = append(s.reports, r)
	return r, nil
}

// Reports returns the reports received in the session.
func (s *Store) Reports() []Report {
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// LoadVerified reads the table of verified drugs.
func LoadVerified(path string) ([]Verified, error) {
	t, err := table.Read(path, table.Options{})
	if err != nil {
		return nil, err
	}
	return VerifiedFromTable(t)
}

// VerifiedFromTable converts the rows of a table to verified drugs.
func VerifiedFromTable(t *table.Table) ([]Verified, error) {
	if err := t.Require(colName, colIngredient, colFormula, colWeight); err != nil {
		return nil, err
	}

	var drugs []Verified
	for _, r := range t.Records() {
		w, err := ParseWeight(r.Get(colWeight))
		if err != nil {
			return nil, r.Errorf("%w", err)
		}

		v := Verified{
			Name:             r.Get(colName),
			ActiveIngredient: r.Get(colIngredient),
			Formula:          r.Get(colFormula),
			Weight:           w,
		}
		if err := v.Validate(); err != nil {
			return nil, r.Errorf("%w", err)
		}
		drugs = append(drugs, v)
	}
	return drugs, nil
}

// LoadSamples reads a table of drugs to check, ex a dataset of known
// counterfeits. It has the same columns as the verified table.
func LoadSamples(path string) ([]Input, error) {
	t, err := table.Read(path, table.Options{})
	if err != nil {
		return nil, err
	}
	if err := t.Require(colName, colIngredient, colFormula, colWeight); err != nil {
		return nil, err
	}

	var samples []Input
	for _, r := range t.Records() {
		w, err := ParseWeight(r.Get(colWeight))
		if err != nil {
			return nil, r.Errorf("%w", err)
		}

		samples = append(samples, Input{
			Name:             r.Get(colName),
			ActiveIngredient: r.Get(colIngredient),
			Formula:          r.Get(colFormula),
			Weight:           w,
		})
	}
	return samples, nil
}
