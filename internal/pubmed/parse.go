// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed parses efetch article XML into Paper records, applying the
// affiliation classifier per author.
package pubmed

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/industry-papers/internal/classify"
	"github.com/pdiddy/industry-papers/pkg/types"
)

// ParseError reports a record that could not be turned into a Paper. The
// pipeline logs these and continues with the remaining records.
type ParseError struct {
	// PMID is the article ID when it could be read, empty otherwise.
	PMID string

	Err error
}

func (e *ParseError) Error() string {
	if e.PMID != "" {
		return fmt.Sprintf("record %s: %v", e.PMID, e.Err)
	}
	return fmt.Sprintf("record: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// emailRe matches an email address embedded in affiliation text, including
// PubMed's "Electronic address: author@example.com." suffix form.
var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Parser converts raw article XML into Paper records.
type Parser struct {
	classifier *classify.Classifier
}

// NewParser builds a Parser around the given affiliation classifier.
func NewParser(c *classify.Classifier) *Parser {
	return &Parser{classifier: c}
}

// SplitRecords splits an efetch PubmedArticleSet document into standalone
// per-article documents, so that one malformed record can be skipped without
// discarding the batch.
func SplitRecords(setXML []byte) ([][]byte, error) {
	var set articleSet
	if err := xml.Unmarshal(setXML, &set); err != nil {
		return nil, fmt.Errorf("parsing article set: %w", err)
	}

	records := make([][]byte, 0, len(set.Articles))
	for _, a := range set.Articles {
		record := append([]byte("<PubmedArticle>"), a.Inner...)
		record = append(record, []byte("</PubmedArticle>")...)
		records = append(records, record)
	}
	return records, nil
}

// ParseRecord parses one PubmedArticle document into a Paper. It fails with
// a *ParseError when the XML is malformed or PMID/title are missing; a
// missing publication date degrades to an empty string instead of failing.
func (p *Parser) ParseRecord(raw []byte) (*types.Paper, error) {
	var article pubmedArticle
	if err := xml.Unmarshal(raw, &article); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("malformed record XML: %w", err)}
	}

	pmid := strings.TrimSpace(article.Citation.PMID)
	title := strings.TrimSpace(article.Citation.Article.Title)
	if pmid == "" {
		return nil, &ParseError{Err: fmt.Errorf("missing PMID")}
	}
	if title == "" {
		return nil, &ParseError{PMID: pmid, Err: fmt.Errorf("missing title")}
	}

	paper := &types.Paper{
		PubmedID: pmid,
		Title:    title,
		PubDate:  formatPubDate(article.Citation.Article.Journal.Issue.PubDate),
	}

	seenEmails := make(map[string]bool)
	for _, author := range article.Citation.Article.AuthorList.Authors {
		for _, aff := range author.Affiliations {
			text := strings.TrimSpace(aff.Affiliation)
			cls := p.classifier.Classify(text)
			if !cls.IsCompany {
				continue
			}

			paper.CompanyAuthors = append(paper.CompanyAuthors, authorName(author))
			paper.CompanyAffiliations = append(paper.CompanyAffiliations, text)

			for _, email := range extractEmails(text) {
				if !seenEmails[email] {
					seenEmails[email] = true
					paper.AuthorEmails = append(paper.AuthorEmails, email)
				}
			}
			break
		}
	}

	return paper, nil
}

// authorName joins fore and last name, falling back to whichever part or
// collective name the record carries.
func authorName(a pubmedAuthor) string {
	fore := strings.TrimSpace(a.ForeName)
	last := strings.TrimSpace(a.LastName)
	switch {
	case fore != "" && last != "":
		return fore + " " + last
	case last != "":
		return last
	case fore != "":
		return fore
	default:
		return strings.TrimSpace(a.CollectiveName)
	}
}

// extractEmails returns embedded email addresses with sentence punctuation
// trimmed.
func extractEmails(text string) []string {
	matches := emailRe.FindAllString(text, -1)
	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		emails = append(emails, strings.TrimRight(m, "."))
	}
	return emails
}

// monthNumbers converts PubMed month names to two-digit numbers.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// formatPubDate renders the publication date with graceful degradation:
// full ISO date, then year-month, then year, then the free-form
// MedlineDate, then empty. A date never fails a record.
func formatPubDate(d pubDate) string {
	year := strings.TrimSpace(d.Year)
	if year == "" {
		return strings.TrimSpace(d.MedlineDate)
	}

	month := normalizeMonth(d.Month)
	if month == "" {
		return year
	}

	day := strings.TrimSpace(d.Day)
	if day == "" {
		return year + "-" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + "-" + month + "-" + day
}

func normalizeMonth(raw string) string {
	m := strings.ToLower(strings.TrimSpace(raw))
	if m == "" {
		return ""
	}
	if num, ok := monthNumbers[m]; ok {
		return num
	}
	if len(m) == 1 {
		return "0" + m
	}
	if len(m) == 2 && m[0] >= '0' && m[0] <= '9' {
		return m
	}
	return ""
}

// PubMed efetch XML structures (the subset the pipeline reads).
type articleSet struct {
	XMLName  xml.Name `xml:"PubmedArticleSet"`
	Articles []struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	XMLName  xml.Name        `xml:"PubmedArticle"`
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string        `xml:"PMID"`
	Article pubmedContent `xml:"Article"`
}

type pubmedContent struct {
	Title      string        `xml:"ArticleTitle"`
	Journal    journal       `xml:"Journal"`
	AuthorList pubmedAuthors `xml:"AuthorList"`
}

type journal struct {
	Issue journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type pubmedAuthors struct {
	Authors []pubmedAuthor `xml:"Author"`
}

type pubmedAuthor struct {
	LastName       string            `xml:"LastName"`
	ForeName       string            `xml:"ForeName"`
	CollectiveName string            `xml:"CollectiveName"`
	Affiliations   []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
