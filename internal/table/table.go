// Package table reads small reference tables from CSV, TSV or XLSX files.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned for a file without a header row.
var ErrEmpty = errors.New("empty table")

// Options for reading a table.
type Options struct {
	// Encoding is a WHATWG label of the file's encoding, ex "cp1252".
	// Empty means UTF-8. Ignored for spreadsheets.
	Encoding string

	// Sheet of a spreadsheet to read. Empty means the first one.
	Sheet string
}

// Table is a header and its rows. Header cells are normalized with Column.
type Table struct {
	// Path the table was read from
	Path string

	Header []string

	Rows [][]string

	// Lines is the 1-based source line/row of each entry in Rows
	Lines []int

	index map[string]int
}

// Record is a single row of a table.
type Record struct {
	// Line is the 1-based line (or spreadsheet row) the record came from
	Line int

	table *Table
	cells []string
}

// Read a table from the file at path. The extension picks the format:
// .xlsx and .xlsm are spreadsheets, .tsv is tab separated and anything
// else is read as CSV.
func Read(path string, opts Options) (*Table, error) {
	var (
		rows  [][]string
		lines []int
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readSpreadsheet(path, opts.Sheet)
	case ".tsv":
		rows, lines, err = readDelimited(path, '\t', opts.Encoding)
	default:
		rows, lines, err = readDelimited(path, ',', opts.Encoding)
	}
	if err != nil {
		return nil, err
	}

	return build(path, rows, lines)
}

// New makes a Table from raw rows, the first of which is the header.
// Rows without any content are dropped.
func New(path string, rows [][]string) (*Table, error) {
	return build(path, rows, nil)
}

// build a table. lines holds the source line of each row, nil
// if they're numbered by their index.
func build(path string, rows [][]string, lines []int) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w", path, ErrEmpty)
	}

	t := &Table{Path: path, index: make(map[string]int)}
	for i, cell := range rows[0] {
		col := Column(cell)
		t.Header = append(t.Header, col)
		if _, seen := t.index[col]; !seen && col != "" {
			t.index[col] = i
		}
	}
	if len(t.index) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w", path, ErrEmpty)
	}

	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		t.Rows = append(t.Rows, rows[i])
		t.Lines = append(t.Lines, line)
	}

	return t, nil
}

// Column normalizes a header cell: NFKC, trimmed, lowercased and with
// runs of whitespace replaced by a single underscore.
func Column(header string) string {
	header = norm.NFKC.String(header)
	header = strings.TrimPrefix(header, "\ufeff") // BOM from spreadsheet exports
	return strings.Join(strings.Fields(strings.ToLower(header)), "_")
}

// Has returns whether the table has a column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[Column(col)]
	return ok
}

// Require returns an error listing every required column that's missing.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, Column(c))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf(
			"%s is missing required column(s) %s, found: %s",
			t.Path,
			strings.Join(missing, ", "),
			strings.Join(t.Header, ", "),
		)
	}
	return nil
}

// Records returns each row of the table.
func (t *Table) Records() []Record {
	records := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = Record{Line: t.Lines[i], table: t, cells: row}
	}
	return records
}

// Get returns the trimmed value of a column or "" if the row or
// table doesn't have it.
func (r Record) Get(col string) string {
	i, ok := r.table.index[Column(col)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Errorf returns an error that points at the record's source line.
// It supports %w like fmt.Errorf.
func (r Record) Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: "+format, append([]interface{}{r.table.Path, r.Line}, args...)...)
}

// readDelimited returns the rows of a delimited file and the line each starts on.
func readDelimited(path string, comma rune, encoding string) (rows [][]string, lines []int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if encoding != "" {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown encoding %q for %s: %w", encoding, path, err)
		}
		src = enc.NewDecoder().Reader(f)
	}

	reader := csv.NewReader(src)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return rows, lines, nil
}

func readSpreadsheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("failed to read %s: %w", path, ErrEmpty)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, path, err)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
