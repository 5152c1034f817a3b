// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/industry-papers/pkg/types"
)

// RunFile is the on-disk representation of one pipeline run: the query, the
// outcome counters, and the filtered papers. A saved run can be re-rendered
// later without touching the network.
type RunFile struct {
	Query   RunQuery      `yaml:"query"`
	Summary RunSummary    `yaml:"summary"`
	Papers  []types.Paper `yaml:"papers"`
}

// RunQuery stores the search parameters in a serializable form.
type RunQuery struct {
	Term       string `yaml:"term"`
	MaxResults int    `yaml:"max_results"`
}

// RunSummary stores the run counters and a timestamp.
type RunSummary struct {
	IDsFound     int       `yaml:"ids_found"`
	Parsed       int       `yaml:"parsed"`
	ParseSkipped int       `yaml:"parse_skipped"`
	Written      int       `yaml:"written"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteRunFile saves the run to a YAML file.
func WriteRunFile(path string, rf RunFile) error {
	if rf.Summary.Timestamp.IsZero() {
		rf.Summary.Timestamp = time.Now()
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// Replay writes the saved papers into sink in their stored order.
func (rf *RunFile) Replay(sink Sink) (int, error) {
	for i := range rf.Papers {
		if err := sink.Write(&rf.Papers[i]); err != nil {
			return i, err
		}
	}
	return len(rf.Papers), sink.Flush()
}
