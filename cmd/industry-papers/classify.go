package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/industry-papers/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [affiliation]",
	Short: "Classify a single affiliation string",
	Long: `Classify runs the affiliation rule table against one free-text affiliation
string and prints the verdict. Useful for checking why a paper was kept or
dropped and for tuning the configured keyword lists.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		affiliation := strings.Join(args, " ")
		c := classify.New(classifierConfig())

		cls := c.Classify(affiliation)
		if cls.IsCompany {
			fmt.Printf("company: %s\n", cls.CompanyName)
		} else {
			fmt.Println("not a company")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
