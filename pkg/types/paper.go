// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the industry-papers pipeline.
package types

// Paper holds the metadata of one PubMed article that survived the
// industry-affiliation filter. A Paper is built once per fetched record and
// is not modified afterwards.
type Paper struct {
	// PubmedID is the article's PMID as returned by the E-utilities.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date: a full "2006-01-02" date when the
	// record carries one, a bare year otherwise, empty when unknown.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// CompanyAuthors lists the company-affiliated authors in record order.
	CompanyAuthors []string `json:"company_authors" yaml:"company_authors"`

	// CompanyAffiliations lists those authors' affiliation strings, in the
	// same collection order as CompanyAuthors.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// AuthorEmails lists emails discovered for company authors,
	// deduplicated within the paper.
	AuthorEmails []string `json:"author_emails" yaml:"author_emails"`
}

// HasCompanyAuthors reports whether the paper passed the affiliation filter.
func (p *Paper) HasCompanyAuthors() bool {
	return len(p.CompanyAuthors) > 0
}
