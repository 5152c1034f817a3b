// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders filtered papers: CSV files, console tables,
// CSL-YAML bibliographies, and saved run files.
package output

import (
	"github.com/pdiddy/industry-papers/pkg/types"
)

// Sink receives papers from the pipeline in output order. Flush is called
// once after the last paper; file-backed sinks create their file lazily on
// the first Write, so an aborted run never creates or truncates output.
type Sink interface {
	Write(p *types.Paper) error
	Flush() error
}

// Collector is a Sink that accumulates papers in memory, used for saved
// run files and for tests.
type Collector struct {
	Papers []*types.Paper
}

// Write appends p to the collected papers.
func (c *Collector) Write(p *types.Paper) error {
	c.Papers = append(c.Papers, p)
	return nil
}

// Flush is a no-op.
func (c *Collector) Flush() error { return nil }

// multiSink fans writes out to several sinks.
type multiSink struct {
	sinks []Sink
}

// Multi combines sinks into one; Write and Flush stop at the first error.
func Multi(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Write(p *types.Paper) error {
	for _, s := range m.sinks {
		if err := s.Write(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) Flush() error {
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}
