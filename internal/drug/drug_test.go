package drug

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var aspirin = Verified{
	Name:             "Aspirin",
	ActiveIngredient: "acetylsalicylic acid",
	Formula:          "C9H8O4",
	Weight:           100,
}

func TestParseFormula(t *testing.T) {
	tests := []struct {
		formula string
		want    Atoms
	}{
		{"C9H8O4", Atoms{"C": 9, "H": 8, "O": 4}},
		{"H8C9O4", Atoms{"C": 9, "H": 8, "O": 4}},
		{"NaCl", Atoms{"Na": 1, "Cl": 1}},
		{"CH3COOH", Atoms{"C": 2, "H": 4, "O": 2}},
		{"C17H19NO3", Atoms{"C": 17, "H": 19, "N": 1, "O": 3}},
		{"", Atoms{}},
		{"123", Atoms{}},
		{"C99999999999999999999H", Atoms{"C": maxAtoms, "H": 1}},
		{"C2147483647C5", Atoms{"C": maxAtoms}},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			if got := ParseFormula(tt.formula); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormula(%q) = %v, want %v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestFormulaMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"C9H8O4", "H8C9O4", true},
		{"C9H8O4", "O4C9H8", true},
		{"C9H8O4", "C9H8O5", false},
		{"C9H8O4", "C9H8", false},
		{"C9H8O4", "C9H8O4N", false},
		{"CO", "Co", false},
		{"C99999999999999999999H", "H", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := FormulaMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("FormulaMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAtoms_String(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{"O4H8C9", "C9H8O4"},
		{"ClNa", "ClNa"},
		{"OH2", "H2O"},
		{"NH3C2", "C2H3N"},
	}

	for _, tt := range tests {
		if got := ParseFormula(tt.formula).String(); got != tt.want {
			t.Errorf("ParseFormula(%q).String() = %q, want %q", tt.formula, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		ingredient bool
		formula    bool
		deviation  float64
		want       Level
	}{
		{"exact", true, true, 0, Low},
		{"at the low bound", true, true, 0.02, Low},
		{"just above the low bound", true, true, 0.0201, Medium},
		{"at the medium bound", true, true, 0.5, Medium},
		{"above the medium bound", true, true, 0.51, High},
		{"wrong ingredient", false, true, 0, High},
		{"wrong formula", true, false, 0, High},
		{"nothing matches", false, false, 0.9, High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ingredient, tt.formula, tt.deviation, DefaultThresholds); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}

	strict := Thresholds{Low: 0.002, Medium: 0.05}
	if got := Classify(true, true, 0.01, strict); got != Medium {
		t.Errorf("Classify() with strict thresholds = %v, want Medium", got)
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds.Validate(); err != nil {
		t.Error(err)
	}
	if err := (Thresholds{Low: 0.5, Medium: 0.1}).Validate(); err == nil {
		t.Error("expected an error for low > medium")
	}
	if err := (Thresholds{Low: -0.1, Medium: 0.1}).Validate(); err == nil {
		t.Error("expected an error for a negative threshold")
	}
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  []Comparison
	}{
		{
			"weight within 2%",
			Input{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 101},
			[]Comparison{{Name: "Aspirin", Level: Low, Found: true, Deviation: 0.01, IngredientMatch: true, FormulaMatch: true}},
		},
		{
			"weight off by 30%",
			Input{Name: "aspirin", ActiveIngredient: "Acetylsalicylic Acid", Formula: "H8C9O4", Weight: 130},
			[]Comparison{{Name: "Aspirin", Level: Medium, Found: true, Deviation: 0.3, IngredientMatch: true, FormulaMatch: true}},
		},
		{
			"weight off by 80%",
			Input{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 20},
			[]Comparison{{Name: "Aspirin", Level: High, Found: true, Deviation: 0.8, IngredientMatch: true, FormulaMatch: true}},
		},
		{
			"wrong formula",
			Input{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O5", Weight: 100},
			[]Comparison{{Name: "Aspirin", Level: High, Found: true, Deviation: 0, IngredientMatch: true, FormulaMatch: false}},
		},
		{
			"wrong ingredient",
			Input{Name: "Aspirin", ActiveIngredient: "chalk", Formula: "C9H8O4", Weight: 100},
			[]Comparison{{Name: "Aspirin", Level: High, Found: true, Deviation: 0, IngredientMatch: false, FormulaMatch: true}},
		},
		{
			"unknown drug",
			Input{Name: "Placebex", ActiveIngredient: "sugar", Formula: "C12H22O11", Weight: 342.3},
			[]Comparison{{Name: "Placebex", Level: Unknown}},
		},
	}

	c := NewChecker(NewStore([]Verified{aspirin}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Check(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Check() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChecker_Check_everyEntry(t *testing.T) {
	second := aspirin
	second.Weight = 180.16

	c := NewChecker(NewStore([]Verified{aspirin, second}))
	got := c.Check(Input{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 180.16})
	if len(got) != 2 {
		t.Fatalf("Check() returned %d comparisons, want 2", len(got))
	}
	if got[0].Level != High || got[1].Level != Low {
		t.Errorf("Check() levels = %v, %v; want High, Low", got[0].Level, got[1].Level)
	}
}

func TestChecker_Scan(t *testing.T) {
	second := aspirin
	second.Weight = 500

	c := NewChecker(NewStore([]Verified{aspirin, second}))
	samples := []Input{
		{Name: "ASPIRIN", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 101},
		{Name: "Nothing", ActiveIngredient: "x", Formula: "H2O", Weight: 18},
		{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 500},
	}

	got := c.Scan(samples)
	want := []Level{Low, Unknown, High}
	if len(got) != len(want) {
		t.Fatalf("Scan() returned %d comparisons, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Level != want[i] {
			t.Errorf("Scan()[%d] = %v, want %v", i, got[i].Level, want[i])
		}
	}
	if got[1].Found {
		t.Error("an unknown drug shouldn't be Found")
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore(nil)
	c := NewChecker(s)

	in := Input{Name: "Newdrug", ActiveIngredient: "novelamide", Formula: "C10H12N2O", Weight: 176.2}
	if got := c.Check(in)[0].Level; got != Unknown {
		t.Fatalf("Check() before Add = %v, want Unknown", got)
	}

	if err := s.Add(Verified{Name: " Newdrug ", ActiveIngredient: "novelamide", Formula: "C10H12N2O", Weight: 176.2}); err != nil {
		t.Fatal(err)
	}
	if got := c.Check(in)[0].Level; got != Low {
		t.Errorf("Check() after Add = %v, want Low", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	// a second session doesn't see the first's additions
	if got := NewStore(nil).Lookup("Newdrug"); len(got) != 0 {
		t.Errorf("new store has %v", got)
	}

	tests := []struct {
		name    string
		drug    Verified
		wantErr error
	}{
		{"no name", Verified{ActiveIngredient: "a", Formula: "H2O", Weight: 18}, ErrMissingField},
		{"no formula", Verified{Name: "a", ActiveIngredient: "a", Weight: 18}, ErrMissingField},
		{"zero weight", Verified{Name: "a", ActiveIngredient: "a", Formula: "H2O"}, ErrInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Add(tt.drug); !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if s.Len() != 1 {
		t.Errorf("invalid drugs were added, Len() = %d", s.Len())
	}
}

func TestNewStore_copies(t *testing.T) {
	seed := []Verified{aspirin}
	s := NewStore(seed)
	seed[0].Name = "changed"

	if len(s.Lookup("Aspirin")) != 1 {
		t.Error("store shares its seed slice")
	}

	drugs := s.Drugs()
	drugs[0].Name = "changed"
	if len(s.Lookup("Aspirin")) != 1 {
		t.Error("Drugs() exposes the store's slice")
	}
}

func TestStore_Report(t *testing.T) {
	s := NewStore(nil)

	r, err := s.Report("  blue pills that should be white ")
	if err != nil {
		t.Fatal(err)
	}
	if r.Text != "blue pills that should be white" {
		t.Errorf("Text = %q", r.Text)
	}
	if r.ID.String() == "" || r.Received.IsZero() {
		t.Errorf("report missing id or time: %+v", r)
	}

	r2, _ := s.Report("another")
	if r2.ID == r.ID {
		t.Error("reports share an id")
	}
	if len(s.Reports()) != 2 {
		t.Errorf("Reports() = %d, want 2", len(s.Reports()))
	}

	if _, err := s.Report("   "); !errors.Is(err, ErrMissingField) {
		t.Errorf("Report() error = %v, want ErrMissingField", err)
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"180.16", 180.16, false},
		{" 46 ", 46, false},
		{"abc", 0, true},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeight(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeight(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWeight) {
				t.Errorf("ParseWeight(%q) error = %v, want ErrInvalidWeight", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeight(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeviation(t *testing.T) {
	if got := Deviation(101, 100); got != 0.01 {
		t.Errorf("Deviation(101, 100) = %v", got)
	}
	if got := Deviation(99, 100); got != 0.01 {
		t.Errorf("Deviation(99, 100) = %v", got)
	}
	if got := Deviation(1, 0); !math.IsInf(got, 1) {
		t.Errorf("Deviation(1, 0) = %v, want +Inf", got)
	}
}

func TestIngredientMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"paracetamol", "paracetamol", true},
		{"Paracetamol", "paracetamol ", true},
		{"codeine, paracetamol", "paracetamol,codeine", true},
		{"codeine, paracetamol", "paracetamol", false},
		{"ibuprofen", "paracetamol", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := IngredientMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("IngredientMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVerified(t *testing.T) {
	path := writeFile(t, "verified_data.csv",
		"Drug Name,Active Ingredient,Molecular Formula,Molecular Weight (g/mol)\n"+
			"Aspirin,acetylsalicylic acid,C9H8O4,180.16\n"+
			"Tylenol,paracetamol,C8H9NO2,151.16\n")

	drugs, err := LoadVerified(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Verified{
		{Name: "Aspirin", ActiveIngredient: "acetylsalicylic acid", Formula: "C9H8O4", Weight: 180.16},
		{Name: "Tylenol", ActiveIngredient: "paracetamol", Formula: "C8H9NO2", Weight: 151.16},
	}
	if !reflect.DeepEqual(drugs, want) {
		t.Errorf("LoadVerified() = %+v, want %+v", drugs, want)
	}

	bad := writeFile(t, "bad.csv",
		"drug_name,active_ingredient,molecular_formula,molecular_weight_(g/mol)\n"+
			"Aspirin,acetylsalicylic acid,C9H8O4,heavy\n")
	_, err = LoadVerified(bad)
	if !errors.Is(err, ErrInvalidWeight) || !strings.Contains(err.Error(), "bad.csv:2") {
		t.Errorf("LoadVerified() error = %v, want ErrInvalidWeight at line 2", err)
	}

	missing := writeFile(t, "missing.csv", "drug_name,molecular_formula\nAspirin,C9H8O4\n")
	if _, err := LoadVerified(missing); err == nil {
		t.Error("expected an error for missing columns")
	}
}

func TestLoadSamples(t *testing.T) {
	path := writeFile(t, "counterfeit_data.csv",
		"Drug Name,Active Ingredient,Molecular Formula,Molecular Weight (g/mol)\n"+
			"Aspirin,chalk,CaCO3,100.09\n")

	samples, err := LoadSamples(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Input{{Name: "Aspirin", ActiveIngredient: "chalk", Formula: "CaCO3", Weight: 100.09}}
	if !reflect.DeepEqual(samples, want) {
		t.Errorf("LoadSamples() = %+v, want %+v", samples, want)
	}
}

func TestLoadMetadata(t *testing.T) {
	path := writeFile(t, "metadata.csv",
		"Drug Name,Dosage Forms,Physical Appearance,Manufacturer\n"+
			"Aspirin,Tablet,Round white,Bayer\n"+
			"Aspirin,Capsule,Oval,Other\n")

	idx, err := LoadMetadata(path, "")
	if err != nil {
		t.Fatal(err)
	}

	got, ok := idx.Find("aspirin")
	if !ok {
		t.Fatal("Find() found nothing")
	}
	want := Metadata{
		DrugName:     "Aspirin",
		DosageForms:  "Tablet",
		Appearance:   "Round white",
		Color:        NotAvailable,
		Manufacturer: "Bayer",
		Packaging:    NotAvailable,
		Batch:        NotAvailable,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %+v, want %+v", got, want)
	}
	if len(got.Fields()) != 6 {
		t.Errorf("Fields() = %v", got.Fields())
	}

	if _, ok := idx.Find("Tylenol"); ok {
		t.Error("Find() found a drug that isn't in the table")
	}

	var none *MetadataIndex
	if _, ok := none.Find("Aspirin"); ok {
		t.Error("nil index found a drug")
	}
}

func TestLevel_Advice(t *testing.T) {
	for _, l := range []Level{Unknown, Low, Medium, High} {
		if l.Advice() == "" {
			t.Errorf("%v has no advice", l)
		}
	}
	if !strings.Contains(High.Advice(), "Do NOT take") {
		t.Errorf("High.Advice() = %q", High.Advice())
	}
}
