package seq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Record is one sequence of a FASTA file.
type Record struct {
	ID  string
	Seq string
}

// ReadFASTA reads the records of a FASTA file. A file without a
// header line is a single record named after the file.
func ReadFASTA(path string) ([]Record, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contents := string(dat)
	if !strings.HasPrefix(strings.TrimSpace(contents), ">") {
		name := filepath.Base(path)
		return []Record{{ID: strings.TrimSuffix(name, filepath.Ext(name)), Seq: contents}}, nil
	}

	records := ParseFASTA(contents)
	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse sequence(s) from %s", path)
	}
	return records, nil
}

// ParseFASTA parses a multi-FASTA text to records. The sequence lines
// are joined but otherwise left as they are so they can still be validated.
// Text before the first header is dropped.
func ParseFASTA(contents string) (records []Record) {
	lines := strings.Split(contents, "\n")

	var headerIndices []int
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
		}
	}

	// accumulate the sequences from between the headers
	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}

		records = append(records, Record{
			ID:  strings.TrimSpace(lines[headerIndex][1:]),
			Seq: strings.Join(lines[headerIndex+1:nextLine], "\n"),
		})
	}
	return
}
