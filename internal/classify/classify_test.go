package classify

import (
	"testing"

	"github.com/pdiddy/industry-papers/pkg/types"
)

func defaultClassifier() *Classifier {
	return New(types.ClassifierConfig{})
}

func TestClassifyAcademic(t *testing.T) {
	tests := []struct {
		name        string
		affiliation string
	}{
		{"university", "Department of Chemistry, Stanford University, Stanford, CA"},
		{"european spelling", "Universität Heidelberg, Germany"},
		{"institute", "Broad Institute of MIT and Harvard, Cambridge, MA"},
		{"hospital", "Massachusetts General Hospital, Boston"},
		{"college", "Imperial College London, UK"},
		{"school of", "Harvard School of Public Health"},
		{"department of", "Department of Medicine, UCSF"},
		{"government", "U.S. Government Accountability Office"},
		{"national lab", "Oak Ridge National Laboratory, TN"},
		{"cdc", "Centers for Disease Control and Prevention, Atlanta"},
	}
	c := defaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.affiliation)
			if got.IsCompany {
				t.Errorf("Classify(%q).IsCompany = true, want false", tt.affiliation)
			}
			if got.CompanyName != "" {
				t.Errorf("Classify(%q).CompanyName = %q, want empty", tt.affiliation, got.CompanyName)
			}
		})
	}
}

func TestClassifyCompany(t *testing.T) {
	tests := []struct {
		name        string
		affiliation string
		wantName    string
	}{
		{"inc", "Pfizer Inc., New York, NY, USA", "Pfizer Inc"},
		{"incorporated", "Genentech Incorporated, South San Francisco, CA", "Genentech Incorporated"},
		{"ltd", "Takeda Pharmaceutical Company Ltd., Osaka, Japan", "Takeda Pharmaceutical Company Ltd"},
		{"llc", "Regeneron Genetics Center LLC, Tarrytown, NY", "Regeneron Genetics Center LLC"},
		{"gmbh", "Boehringer Ingelheim GmbH, Biberach, Germany", "Boehringer Ingelheim GmbH"},
		{"pharma word", "Oncology Research, AstraZeneca Pharmaceuticals, Gaithersburg, MD", "AstraZeneca Pharmaceuticals"},
		{"biotech", "Exelixis Biotech, South San Francisco", "Exelixis Biotech"},
		{"therapeutics", "Alnylam Therapeutics, Cambridge, MA", "Alnylam Therapeutics"},
		{"ag", "Novartis AG, Basel, Switzerland", "Novartis AG"},
		{"segment after comma", "Clinical Development, Moderna Inc., Cambridge, MA", "Moderna Inc"},
	}
	c := defaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.affiliation)
			if !got.IsCompany {
				t.Fatalf("Classify(%q).IsCompany = false, want true", tt.affiliation)
			}
			if got.CompanyName != tt.wantName {
				t.Errorf("CompanyName = %q, want %q", got.CompanyName, tt.wantName)
			}
		})
	}
}

// Academic rules are checked first, so a company suffix inside an academic
// affiliation does not flip the verdict.
func TestClassifyAcademicWinsOverCompany(t *testing.T) {
	c := defaultClassifier()
	got := c.Classify("Department of Oncology, Pfizer Inc., New York")
	if got.IsCompany {
		t.Errorf("academic indicator should take precedence, got %+v", got)
	}
}

func TestClassifyNoBoundaryFalsePositives(t *testing.T) {
	tests := []string{
		"Since 1990 Research Center",         // "inc" inside "since"
		"Principality Medical Research Unit", // no indicator at all
		"Magnesium Research Group, Münster",  // "ag" inside "magnesium"
		"Biomedical Incubator, Tel Aviv",     // "inc" prefix without a suffix match
	}
	c := defaultClassifier()
	for _, affiliation := range tests {
		if got := c.Classify(affiliation); got.IsCompany {
			t.Errorf("Classify(%q) = %+v, want non-company", affiliation, got)
		}
	}
}

func TestClassifyEmptyAndUnmatched(t *testing.T) {
	c := defaultClassifier()
	for _, affiliation := range []string{"", "   ", "Independent Researcher, Lisbon"} {
		got := c.Classify(affiliation)
		if got.IsCompany || got.CompanyName != "" {
			t.Errorf("Classify(%q) = %+v, want zero value", affiliation, got)
		}
	}
}

func TestClassifyConfiguredKeywords(t *testing.T) {
	c := New(types.ClassifierConfig{
		CompanyKeywords:  []string{"bioworks"},
		AcademicKeywords: []string{"polytechnic"},
	})

	got := c.Classify("Ginkgo Bioworks, Boston, MA")
	if !got.IsCompany {
		t.Fatalf("configured company keyword did not match: %+v", got)
	}
	if got.CompanyName != "Ginkgo Bioworks" {
		t.Errorf("CompanyName = %q, want %q", got.CompanyName, "Ginkgo Bioworks")
	}

	if got := c.Classify("Hong Kong Polytechnic, Kowloon"); got.IsCompany {
		t.Errorf("configured academic keyword should win: %+v", got)
	}
}
