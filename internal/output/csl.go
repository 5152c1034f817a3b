package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/industry-papers/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
	PMID   string    `yaml:"PMID"`
	Note   string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// CSLSink writes papers as a CSL-YAML bibliography. File-backed sinks open
// their file lazily on the first Write.
type CSLSink struct {
	path   string
	w      io.Writer
	papers []*types.Paper
}

// NewCSLFileSink returns a sink writing the bibliography to path.
func NewCSLFileSink(path string) *CSLSink {
	return &CSLSink{path: path}
}

// NewCSLSink returns a sink writing the bibliography to w.
func NewCSLSink(w io.Writer) *CSLSink {
	return &CSLSink{w: w}
}

// Write buffers a paper; the bibliography is encoded on Flush.
func (s *CSLSink) Write(p *types.Paper) error {
	s.papers = append(s.papers, p)
	return nil
}

// Flush encodes the buffered papers as a CSL-YAML list. With no papers and
// a file path, no file is created.
func (s *CSLSink) Flush() error {
	if len(s.papers) == 0 && s.path != "" {
		return nil
	}

	w := s.w
	if w == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("creating bibliography file: %w", err)
		}
		defer f.Close()
		w = f
	}

	items := make([]CSLItem, len(s.papers))
	for i, p := range s.papers {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. Only company-affiliated authors
// are carried; the companies are recorded in the note field.
func toCSLItem(p *types.Paper) CSLItem {
	item := CSLItem{
		ID:    "pmid:" + p.PubmedID,
		Type:  "article-journal",
		Title: p.Title,
		PMID:  p.PubmedID,
	}

	for _, a := range p.CompanyAuthors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if len(p.CompanyAffiliations) > 0 {
		item.Note = "Company affiliations: " + strings.Join(p.CompanyAffiliations, multiValueSep)
	}
	if d := parseDateParts(p.PubDate); len(d) > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{d}}
	}
	return item
}

// parseDateParts turns "2023-03-05", "2023-03", or "2023" into CSL
// date-parts. Free-form dates yield none.
func parseDateParts(date string) []int {
	var parts []int
	for _, field := range strings.SplitN(date, "-", 3) {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			break
		}
		parts = append(parts, n)
	}
	if len(parts) == 0 || parts[0] < 1000 {
		return nil
	}
	return parts
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
