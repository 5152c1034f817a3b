// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a free-text author affiliation belongs to
// a for-profit company rather than an academic or governmental institution.
//
// The decision is an ordered rule table: academic indicators are checked
// before company indicators, so "Department of Oncology, Pfizer Inc." reads
// as academic. That ordering trades recall for precision; an affiliation
// matching neither table is not a company.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/industry-papers/pkg/types"
)

// Classification is the verdict for one affiliation string.
type Classification struct {
	// IsCompany reports whether the affiliation looks like a for-profit entity.
	IsCompany bool

	// CompanyName is the extracted company name, non-empty iff IsCompany.
	CompanyName string
}

// rule is one entry of the ordered match table.
type rule struct {
	keyword string
	re      *regexp.Regexp
	company bool
}

// academicPatterns mark academic, medical, or governmental institutions.
// Prefix forms ("universit", "institut") also cover the common European
// spellings that show up in PubMed affiliations.
var academicPatterns = []string{
	`universit`,
	`institut`,
	`college`,
	`hospital`,
	`school of`,
	`department of`,
	`faculty of`,
	`academy of`,
	`national laboratory`,
	`ministry of`,
	`government`,
	`federal`,
	`centers for disease control`,
	`public health`,
}

// companyPatterns mark for-profit suffixes and pharma/biotech markers.
var companyPatterns = []string{
	`inc\b`,
	`incorporated\b`,
	`ltd\b`,
	`llc\b`,
	`corp\w*`,
	`pharma\w*`,
	`biotech\w*`,
	`gmbh\b`,
	`co\.`,
	`plc\b`,
	`ag\b`,
	`s\.a\.`,
	`therapeutics`,
	`biosciences`,
	`laboratories`,
}

// Classifier applies the rule table. Zero-extension classifiers are cheap to
// build; construct one per run.
type Classifier struct {
	rules []rule
}

// New builds a Classifier from the built-in tables plus any extra keywords
// from configuration. Configured keywords are matched literally with word
// boundaries and are checked after the built-in rules of the same verdict.
func New(cfg types.ClassifierConfig) *Classifier {
	c := &Classifier{}
	for _, p := range academicPatterns {
		c.rules = append(c.rules, compileRule(p, false))
	}
	for _, kw := range cfg.AcademicKeywords {
		c.rules = append(c.rules, compileRule(literalPattern(kw), false))
	}
	for _, p := range companyPatterns {
		c.rules = append(c.rules, compileRule(p, true))
	}
	for _, kw := range cfg.CompanyKeywords {
		c.rules = append(c.rules, compileRule(literalPattern(kw), true))
	}
	return c
}

func compileRule(pattern string, company bool) rule {
	return rule{
		keyword: pattern,
		re:      regexp.MustCompile(`(?i)\b` + pattern),
		company: company,
	}
}

// literalPattern escapes a configured keyword for literal matching.
func literalPattern(kw string) string {
	return regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(kw)))
}

// Classify runs the rule table against one affiliation string. The first
// matching rule wins; academic rules are ordered before company rules.
func (c *Classifier) Classify(affiliation string) Classification {
	text := strings.TrimSpace(affiliation)
	if text == "" {
		return Classification{}
	}

	for _, r := range c.rules {
		loc := r.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if !r.company {
			return Classification{}
		}
		return Classification{
			IsCompany:   true,
			CompanyName: extractCompanyName(text, loc),
		}
	}
	return Classification{}
}

// extractCompanyName pulls the company name out of the affiliation: the
// comma-delimited segment leading up to the matched indicator, trimmed of
// trailing punctuation ("Pfizer Inc., New York, NY" → "Pfizer Inc").
func extractCompanyName(text string, loc []int) string {
	start := 0
	if idx := strings.LastIndex(text[:loc[0]], ","); idx >= 0 {
		start = idx + 1
	}
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(text[start:loc[1]]), ".,;"))
	if name != "" {
		return name
	}

	// Indicator at the very start of a segment; fall back to the first
	// comma-delimited segment, then to the matched text itself.
	if idx := strings.Index(text, ","); idx > 0 {
		if seg := strings.TrimSpace(text[:idx]); seg != "" {
			return seg
		}
	}
	return strings.TrimSpace(text[loc[0]:loc[1]])
}
