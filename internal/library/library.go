// Package library filters and orders already-fetched document lists. Every
// function here is pure: no network, no mutation of the input, identical
// arguments always produce identical output.
package library

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scholar/apimodels"
)

// AllSubjects disables the exact-match subject filter.
const AllSubjects = "all"

type SortKey string

const (
	SortUploadDate SortKey = "date"       // newest first
	SortFilename   SortKey = "filename"   // locale-aware ascending
	SortComplexity SortKey = "complexity" // highest first
)

// Query describes one filter/sort pass over a document list.
type Query struct {
	Search  string
	Subject string
	Sort    SortKey
}

var collator = collate.New(language.Und, collate.IgnoreCase)

// Upload dates come from the backend as isoformat() strings, which carry a
// timezone only sometimes and fractional seconds only sometimes.
var uploadDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Apply returns the documents matching q, ordered by q.Sort. The result is
// always a permutation of a subset of docs; the input slice is untouched.
func Apply(docs []apimodels.Document, q Query) []apimodels.Document {
	out := make([]apimodels.Document, 0, len(docs))
	for _, d := range docs {
		if Matches(d, q.Search, q.Subject) {
			out = append(out, d)
		}
	}

	switch q.Sort {
	case SortFilename:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Filename, out[j].Filename) < 0
		})
	case SortComplexity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ComplexityScore > out[j].ComplexityScore
		})
	case SortUploadDate:
		fallthrough
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return parseUploadDate(out[i].UploadDate).After(parseUploadDate(out[j].UploadDate))
		})
	}
	return out
}

// Matches reports whether d passes the search and subject predicates: the
// search text must appear case-insensitively in the filename or the subject,
// and the subject filter, unless it is the AllSubjects sentinel, must equal
// the document's subject exactly.
func Matches(d apimodels.Document, search, subject string) bool {
	if subject != "" && subject != AllSubjects && d.Subject != subject {
		return false
	}
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(d.Filename), needle) ||
		strings.Contains(strings.ToLower(d.Subject), needle)
}

// Subjects returns the distinct subjects present in docs, sorted with the
// same collator the filename sort uses.
func Subjects(docs []apimodels.Document) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range docs {
		if d.Subject == "" {
			continue
		}
		if _, ok := seen[d.Subject]; ok {
			continue
		}
		seen[d.Subject] = struct{}{}
		out = append(out, d.Subject)
	}
	collator.SortStrings(out)
	return out
}

// parseUploadDate parses a backend timestamp, returning the zero time for
// anything unparseable so malformed records sort last under newest-first.
func parseUploadDate(s string) time.Time {
	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
