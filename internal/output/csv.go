// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/industry-papers/pkg/types"
)

// multiValueSep joins multi-value fields inside a single CSV cell.
const multiValueSep = "; "

// csvHeader is the fixed column set of the CSV output.
var csvHeader = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Company Affiliation Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email(s)",
}

// CSVSink writes papers as CSV rows. When built with NewCSVFileSink the file
// is created on the first Write.
type CSVSink struct {
	path       string
	closer     io.Closer
	w          *csv.Writer
	headerDone bool
}

// NewCSVFileSink returns a sink that writes CSV to path, creating the file
// lazily.
func NewCSVFileSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// NewCSVSink returns a sink that writes CSV to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// Write emits one paper as a CSV row, opening the file and writing the
// header first if needed.
func (s *CSVSink) Write(p *types.Paper) error {
	if s.w == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		s.closer = f
		s.w = csv.NewWriter(f)
	}
	if !s.headerDone {
		if err := s.w.Write(csvHeader); err != nil {
			return err
		}
		s.headerDone = true
	}

	return s.w.Write([]string{
		p.PubmedID,
		p.Title,
		p.PubDate,
		strings.Join(p.CompanyAuthors, multiValueSep),
		strings.Join(p.CompanyAffiliations, multiValueSep),
		strings.Join(p.AuthorEmails, multiValueSep),
	})
}

// Flush flushes buffered rows and closes the file when one was opened. A
// sink that never received a paper creates no file.
func (s *CSVSink) Flush() error {
	if s.w == nil || !s.headerDone {
		return nil
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
