package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jjtimmons/biohack/config"
	"github.com/jjtimmons/biohack/internal/drug"
	"github.com/jjtimmons/biohack/internal/render"
)

// session is the state of the drug commands in one run: the verified
// drugs, including the ones added during the run, and the reports received.
type session struct {
	store    *drug.Store
	checker  drug.Checker
	metadata *drug.MetadataIndex
	printer  *render.Printer

	// path to the table of samples for scan
	samples string
}

const sessionHelp = `commands:
  check name | ingredient | formula | weight   check a drug against the verified drugs
  add name | ingredient | formula | weight     add a newly verified drug to this session
  scan                                         check every drug in the samples table
  info name                                    show metadata about a drug
  report text                                  report a suspicious drug
  list                                         list the verified drugs
  help                                         show this message
  quit                                         end the session`

// newSession loads the verified drugs, and the metadata if it's set.
func newSession(c config.Config, p *render.Printer) (*session, error) {
	verified, err := drug.LoadVerified(c.Drug.Verified)
	if err != nil {
		return nil, fmt.Errorf("failed to load verified drugs: %w", err)
	}

	var metadata *drug.MetadataIndex
	if c.Drug.Metadata != "" {
		if metadata, err = drug.LoadMetadata(c.Drug.Metadata, c.Drug.MetadataEncoding); err != nil {
			return nil, fmt.Errorf("failed to load drug metadata: %w", err)
		}
	}

	store := drug.NewStore(verified)
	if c.Verbose {
		stderr.Printf("loaded %d verified drugs from %s", store.Len(), c.Drug.Verified)
	}

	return &session{
		store:    store,
		checker:  drug.Checker{Store: store, Thresholds: c.Drug.Thresholds},
		metadata: metadata,
		printer:  p,
		samples:  c.Drug.Samples,
	}, nil
}

// check compares a drug against the verified drugs and shows its metadata.
func (s *session) check(in drug.Input) {
	if strings.TrimSpace(in.Name) == "" {
		s.printer.Error("%v: drug name", drug.ErrMissingField)
		return
	}

	s.printer.Comparisons(s.checker.Check(in))
	if s.metadata != nil {
		s.printer.Info("")
		s.info(in.Name)
	}
}

// checkFields checks a drug from its name, ingredient, formula and weight.
func (s *session) checkFields(fields []string) {
	v, err := parseDrug(fields)
	if err != nil {
		s.printer.Error("%v", err)
		return
	}
	s.check(drug.Input{
		Name:             v.Name,
		ActiveIngredient: v.ActiveIngredient,
		Formula:          v.Formula,
		Weight:           v.Weight,
	})
}

// add a verified drug to the session from its fields.
func (s *session) add(fields []string) bool {
	v, err := parseDrug(fields)
	if err == nil {
		err = s.store.Add(v)
	}
	if err != nil {
		s.printer.Error("%v", err)
		return false
	}

	s.printer.Success("New drug added successfully!")
	return true
}

// scan checks every drug in the samples table.
func (s *session) scan() error {
	samples, err := drug.LoadSamples(s.samples)
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}

	s.printer.Info("Comparison of %s against the verified drugs:", s.samples)
	s.printer.Table(
		[]string{"Drug Name", "Risk Level", "Molecular Weight Difference (%)", "Active Ingredient Match", "Molecular Formula Match"},
		render.ComparisonRows(s.checker.Scan(samples)),
	)
	return nil
}

// info shows the metadata of a drug.
func (s *session) info(name string) {
	if s.metadata == nil {
		s.printer.Warning("No drug metadata table, set it with --metadata")
		return
	}
	m, found := s.metadata.Find(name)
	s.printer.Metadata(name, m, found)
}

// report records a suspicious drug.
func (s *session) report(text string) {
	r, err := s.store.Report(text)
	if err != nil {
		s.printer.Error("%v", err)
		return
	}

	s.printer.Success("Thank you for reporting: %s. This will be reported to a regulatory agency for further action.", r.Text)
	s.printer.Info("Report ID: %s", r.ID)
}

// list shows the verified drugs of the session.
func (s *session) list() {
	var rows [][]string
	for _, d := range s.store.Drugs() {
		rows = append(rows, []string{d.Name, d.ActiveIngredient, d.Formula, strconv.FormatFloat(d.Weight, 'f', -1, 64)})
	}
	s.printer.Table([]string{"Drug Name", "Active Ingredient", "Molecular Formula", "Molecular Weight (g/mol)"}, rows)
}

// run reads one command per line from r until it ends or a quit.
func (s *session) run(r io.Reader) error {
	w := s.printer.Writer()
	scanner := bufio.NewScanner(r)

	fmt.Fprint(w, "> ")
	for scanner.Scan() {
		verb, arg := splitCommand(scanner.Text())

		switch verb {
		case "":
		case "check":
			s.checkFields(splitFields(arg, "|"))
		case "add":
			s.add(splitFields(arg, "|"))
		case "scan":
			if err := s.scan(); err != nil {
				s.printer.Error("%v", err)
			}
		case "info":
			s.info(arg)
		case "report":
			s.report(arg)
		case "list":
			s.list()
		case "help":
			s.printer.Info(sessionHelp)
		case "quit", "exit":
			return nil
		default:
			s.printer.Error("unknown command %q, try 'help'", verb)
		}
		fmt.Fprint(w, "> ")
	}
	fmt.Fprintln(w)
	return scanner.Err()
}

// splitCommand splits a session line into its lowercased verb and the rest
func splitCommand(line string) (verb, arg string) {
	line = strings.TrimSpace(line)
	verb, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(arg)
}

// splitFields splits the fields of a drug. An ingredient list may hold
// the separator, so anything between the name and the last two fields
// is the ingredient.
func splitFields(s, sep string) []string {
	fields := strings.Split(s, sep)
	if n := len(fields); n > 4 {
		fields = []string{fields[0], strings.Join(fields[1:n-2], sep), fields[n-2], fields[n-1]}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseDrug parses the name, ingredient, formula and weight of a drug
func parseDrug(fields []string) (drug.Verified, error) {
	if len(fields) != 4 {
		return drug.Verified{}, fmt.Errorf("%w: need a name, active ingredient, molecular formula and weight, got %d fields", drug.ErrMissingField, len(fields))
	}

	weight, err := drug.ParseWeight(fields[3])
	if err != nil {
		return drug.Verified{}, err
	}
	return drug.Verified{
		Name:             fields[0],
		ActiveIngredient: fields[1],
		Formula:          fields[2],
		Weight:           weight,
	}, nil
}
