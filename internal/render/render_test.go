package render

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/biohack/internal/align"
	"github.com/jjtimmons/biohack/internal/drug"
	"github.com/jjtimmons/biohack/internal/match"
)

func TestPrinter_colors(t *testing.T) {
	tests := []struct {
		name  string
		color bool
		want  string
	}{
		{"plain", false, "hello 1\n"},
		{"colored", true, "\033[32mhello 1\033[0m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, tt.color).Success("hello %d", 1)
			if got := buf.String(); got != tt.want {
				t.Errorf("Success() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_brackets(t *testing.T) {
	tests := []struct {
		name  string
		color bool
		print func(*Printer)
		want  string
	}{
		{
			"plain",
			false,
			func(p *Printer) { p.Success("Thank you for reporting: %s.", "[blue] pills labelled [Tylenol]") },
			"Thank you for reporting: [blue] pills labelled [Tylenol].\n",
		},
		{
			"colored",
			true,
			func(p *Printer) { p.Success("Thank you for reporting: %s.", "[blue] pills labelled [Tylenol]") },
			"\033[32mThank you for reporting: [blue] pills labelled [Tylenol].\033[0m\n",
		},
		{
			"info",
			true,
			func(p *Printer) { p.Info("%s", "[red]not red") },
			"[red]not red\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf, tt.color))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.Table([]string{"a", "bb"}, [][]string{{"ccc", "d"}})

	want := "a     bb   \nccc   d    \n"
	if got := buf.String(); got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}

	buf.Reset()
	p.Table(nil, [][]string{{"x", "y"}})
	if got := buf.String(); strings.Count(got, "\n") != 1 {
		t.Errorf("Table() without header = %q, want a single line", got)
	}
}

func TestPrinter_Decision(t *testing.T) {
	gene := &match.Gene{Name: "BRCA1", Sequence: "ATCGATCG", Condition: "breast cancer", Risk: 5}

	tests := []struct {
		name     string
		decision match.Decision
		verbose  bool
		want     []string
		notWant  []string
	}{
		{
			"no match",
			match.Decision{},
			false,
			[]string{"No match found in database :("},
			[]string{"Match found!"},
		},
		{
			"no match verbose shows closest",
			match.Decision{Gene: gene, Identity: 62.5},
			true,
			[]string{"No match found in database :(", "Closest gene: BRCA1 (62.50% identity)"},
			nil,
		},
		{
			"high risk match",
			match.Decision{Gene: gene, Identity: 100, Matched: true},
			false,
			[]string{
				"Match found!",
				"Gene associated with entered sequence: BRCA1 (100.00% identity)",
				"Uh oh...",
				"You are at a HIGH risk of developing breast cancer.",
			},
			[]string{"reference"},
		},
		{
			"verbose alignment",
			match.Decision{
				Gene:     gene,
				Identity: 100,
				Matched:  true,
				Alignment: align.Result{
					AlignedQuery:     "ATCG",
					AlignedReference: "ATCG",
					Score:            8,
					QueryEnd:         4,
					RefEnd:           4,
				},
			},
			true,
			[]string{"score 8, query 1-4, reference 1-4", "query     ATCG"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, false).Decision(tt.decision, tt.verbose)

			got := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Decision() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Decision() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}

func TestComparisonRows(t *testing.T) {
	comparisons := []drug.Comparison{
		{Name: "Paracetamol", Level: drug.Low, Found: true, Deviation: 0.0123, IngredientMatch: true, FormulaMatch: true},
		{Name: "Mystery", Level: drug.Unknown},
	}

	want := [][]string{
		{"Paracetamol", "Low", "1.23", "true", "true"},
		{"Mystery", "Unknown - drug not found", "N/A", "N/A", "N/A"},
	}
	if got := ComparisonRows(comparisons); !reflect.DeepEqual(got, want) {
		t.Errorf("ComparisonRows() = %v, want %v", got, want)
	}
}

func TestPrinter_Comparisons(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Comparisons([]drug.Comparison{
		{Name: "Ibuprofen", Level: drug.High, Found: true, Deviation: 0.8, IngredientMatch: true, FormulaMatch: true},
	})

	got := buf.String()
	for _, w := range []string{
		"Drug: Ibuprofen - Risk Level: High. The drug is a counterfeit.",
		"Molecular Weight Difference (%)",
		"80.00",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("Comparisons() = %q, missing %q", got, w)
		}
	}
}

func TestPrinter_Metadata(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Metadata("Aspirin", drug.Metadata{}, false)
	if got := buf.String(); !strings.Contains(got, "No metadata found for this drug") {
		t.Errorf("Metadata() = %q, want no metadata message", got)
	}

	buf.Reset()
	p.Metadata("Aspirin", drug.Metadata{DrugName: "Aspirin", Color: "white", Batch: drug.NotAvailable}, true)
	got := buf.String()
	for _, w := range []string{"Additional information about Aspirin:", "Color:", "white", "Batch Info:"} {
		if !strings.Contains(got, w) {
			t.Errorf("Metadata() = %q, missing %q", got, w)
		}
	}
}

func TestProgress_nilWriter(t *testing.T) {
	p := NewProgress(nil, 3, "aligning")
	for i := 1; i <= 3; i++ {
		p.Set(i, 3)
	}
	if p.bar != nil {
		t.Error("NewProgress(nil) should not draw a bar")
	}
}
