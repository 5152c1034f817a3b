// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/industry-papers/pkg/types"
)

// titleColumnWidth caps the title column so rows stay on one terminal line.
const titleColumnWidth = 60

// ConsoleSink renders papers as a table on Flush.
type ConsoleSink struct {
	w      io.Writer
	papers []*types.Paper
}

// NewConsoleSink returns a sink that renders a table to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Write buffers one paper for rendering.
func (s *ConsoleSink) Write(p *types.Paper) error {
	s.papers = append(s.papers, p)
	return nil
}

// Flush renders the buffered papers and a summary line.
func (s *ConsoleSink) Flush() error {
	if len(s.papers) == 0 {
		fmt.Fprintln(s.w, "No papers with company-affiliated authors found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(s.w)
	t.AppendHeader(table.Row{"PubmedID", "Title", "Date", "Company Author(s)", "Company Affiliation(s)", "Email(s)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: titleColumnWidth},
		{Name: "Company Affiliation(s)", WidthMax: titleColumnWidth},
	})

	for _, p := range s.papers {
		t.AppendRow(table.Row{
			p.PubmedID,
			p.Title,
			p.PubDate,
			strings.Join(p.CompanyAuthors, multiValueSep),
			strings.Join(p.CompanyAffiliations, multiValueSep),
			strings.Join(p.AuthorEmails, multiValueSep),
		})
	}
	t.Render()

	fmt.Fprintf(s.w, "\n%d paper(s) with company-affiliated authors\n", len(s.papers))
	return nil
}
