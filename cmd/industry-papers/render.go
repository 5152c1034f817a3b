package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/industry-papers/internal/output"
)

var renderCmd = &cobra.Command{
	Use:   "render [run-file]",
	Short: "Re-render a saved run without touching the network",
	Long: `Render reads a run file previously written with fetch --save and renders
its papers again: to the console, a CSV file, or a CSL-YAML bibliography.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("file", "f", "", "output file path; omit to print to console")
	renderCmd.Flags().String("format", "", "output format: csv or csl (default csv for files)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	if format != "" && format != "csv" && format != "csl" {
		return fmt.Errorf("unknown format %q: use csv or csl", format)
	}

	rf, err := output.ReadRunFile(args[0])
	if err != nil {
		return err
	}

	sink, _, err := buildSink(filePath, format, "")
	if err != nil {
		return err
	}

	n, err := rf.Replay(sink)
	if err != nil {
		return err
	}
	if filePath != "" {
		fmt.Printf("Saved %d paper(s) to %s\n", n, filePath)
	}
	fmt.Fprintf(os.Stderr, "query: %q (max %d), recorded %s\n",
		rf.Query.Term, rf.Query.MaxResults, rf.Summary.Timestamp.Format("2006-01-02 15:04"))
	return nil
}
